package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

var (
	ErrCategoryNotFound = errors.New("Category not found")
	ErrProductNotFound  = errors.New("Product not found")
	ErrCategoryExists   = errors.New("Category with new name already exists")
	ErrProductExists    = errors.New("Product already exists")
	ErrNegativeStock    = errors.New("quantity_in_stock must not be negative")
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ---------- Categories ----------

func (s *CatalogService) AddCategory(name, description, location string) error {
	if _, err := s.Cats.ByName(name); err == nil {
		return ErrCategoryExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.Cats.Create(domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Location:    location,
	})
}

// UpdateCategory renames a category. The description is always rewritten;
// the location only when a new one is given.
func (s *CatalogService) UpdateCategory(name, newName, description, newLocation string) error {
	if newName != name {
		if _, err := s.Cats.ByName(newName); err == nil {
			return ErrCategoryExists
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}
	c, err := s.Cats.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	c.Name = newName
	c.Description = description
	if newLocation != "" {
		c.Location = newLocation
	}
	return s.Cats.Update(c)
}

func (s *CatalogService) DeleteCategory(name string) error {
	c, err := s.Cats.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	return s.Cats.DeleteCascade(c.ID)
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// SearchCategory returns a category together with its products.
func (s *CatalogService) SearchCategory(name string) (domain.Category, []domain.Product, error) {
	c, err := s.Cats.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, nil, ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, nil, err
	}
	products, err := s.Prods.ListByCategory(c.ID)
	if err != nil {
		return domain.Category{}, nil, err
	}
	return c, products, nil
}

// ---------- Products ----------

func (s *CatalogService) AddProduct(name string, price decimal.Decimal, categoryName string, quantity int, location string) error {
	if _, err := s.Prods.ByName(name); err == nil {
		return ErrProductExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	cat, err := s.Cats.ByName(categoryName)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	if quantity < 0 {
		return ErrNegativeStock
	}
	return s.Prods.Create(domain.Product{
		ID:              uuid.NewString(),
		Name:            name,
		Price:           price,
		QuantityInStock: quantity,
		CategoryID:      cat.ID,
		Location:        location,
		LastUpdated:     domain.FormatTime(time.Now()),
	})
}

// ProductUpdate carries the optional fields of a product update; nil pointer
// means "leave unchanged".
type ProductUpdate struct {
	NewName      string
	Price        *decimal.Decimal
	CategoryName string
	Quantity     *int
	Location     string
}

func (s *CatalogService) UpdateProduct(name string, upd ProductUpdate) error {
	p, err := s.Prods.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if upd.NewName != "" && upd.NewName != name {
		if _, err := s.Prods.ByName(upd.NewName); err == nil {
			return ErrProductExists
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		p.Name = upd.NewName
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.CategoryName != "" {
		cat, err := s.Cats.ByName(upd.CategoryName)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		if err != nil {
			return err
		}
		p.CategoryID = cat.ID
	}
	if upd.Quantity != nil {
		if *upd.Quantity < 0 {
			return ErrNegativeStock
		}
		p.QuantityInStock = *upd.Quantity
	}
	if upd.Location != "" {
		p.Location = upd.Location
	}
	return s.Prods.Update(p)
}

func (s *CatalogService) DeleteProduct(name string) error {
	p, err := s.Prods.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	return s.Prods.DeleteCascade(p.ID)
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) SearchProduct(name string) (domain.Product, error) {
	p, err := s.Prods.ByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}

// CategoryName resolves a product's category id to its display name.
// Empty in, empty out (uncategorized products).
func (s *CatalogService) CategoryName(categoryID string) string {
	if categoryID == "" {
		return ""
	}
	c, err := s.Cats.ByID(categoryID)
	if err != nil {
		return ""
	}
	return c.Name
}
