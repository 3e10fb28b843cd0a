package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productReq struct {
	ProductName     string           `json:"product_name"`
	NewProductName  string           `json:"new_product_name"`
	Price           *decimal.Decimal `json:"price"`
	CategoryName    string           `json:"category_name"`
	QuantityInStock *int             `json:"quantity_in_stock"`
	Location        string           `json:"location"`
}

func productName(c *fiber.Ctx) string {
	if q := c.Query("product_name"); q != "" {
		return q
	}
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return ""
	}
	return req.ProductName
}

func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	name, ok := validate.Name(req.ProductName)
	if !ok || req.Price == nil || req.CategoryName == "" || req.QuantityInStock == nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_add"})
		return fail(c, fiber.StatusBadRequest, "Product name, price, category, and quantity are required")
	}
	if err := h.Catalog.AddProduct(name, *req.Price, req.CategoryName, *req.QuantityInStock, req.Location); err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "product.add", map[string]any{"product_name": name})
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Product added successfully"})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ProductName == "" {
		return fail(c, fiber.StatusBadRequest, "Product name is required")
	}
	upd := services.ProductUpdate{
		NewName:      req.NewProductName,
		Price:        req.Price,
		CategoryName: req.CategoryName,
		Quantity:     req.QuantityInStock,
		Location:     req.Location,
	}
	if err := h.Catalog.UpdateProduct(req.ProductName, upd); err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_name": req.ProductName})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Product updated successfully"})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	name := productName(c)
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Product name is required")
	}
	if err := h.Catalog.DeleteProduct(name); err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_name": name})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Product deleted successfully"})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		return failFromErr(c, err)
	}
	out := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		out = append(out, fiber.Map{
			"product_name":      p.Name,
			"price":             p.Price.StringFixed(2),
			"category":          h.categoryOrNil(p),
			"quantity_in_stock": p.QuantityInStock,
			"location":          p.Location,
		})
	}
	return success(c, fiber.StatusOK, fiber.Map{"products": out})
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	name := productName(c)
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Product name is required")
	}
	p, err := h.Catalog.SearchProduct(name)
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"product": fiber.Map{
			"product_name":      p.Name,
			"price":             p.Price.StringFixed(2),
			"category":          h.categoryOrNil(p),
			"quantity_in_stock": p.QuantityInStock,
			"last_updated":      p.LastUpdated,
			"location":          p.Location,
		},
	})
}

func (h *ProductHandler) categoryOrNil(p domain.Product) any {
	if p.CategoryID == "" {
		return nil
	}
	return h.Catalog.CategoryName(p.CategoryID)
}
