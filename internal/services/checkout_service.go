package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

var (
	ErrEmptyCart   = errors.New("Items must be a non-empty list")
	ErrBadItem     = errors.New("Each item must have product_name and quantity_sold")
	ErrBadQuantity = errors.New("Invalid quantity")
)

// UnknownProductError reports a cart line naming a product that does not exist.
type UnknownProductError struct{ Name string }

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("Product '%s' not found", e.Name)
}

type CheckoutItem struct {
	ProductName  string
	QuantitySold int
}

type CheckoutLine struct {
	Product        string
	SoldQuantity   int
	PricePerUnit   decimal.Decimal
	ItemTotal      decimal.Decimal
	RemainingStock int
}

type CheckoutResult struct {
	SaleID         string
	TransactionIDs []string
	TotalAmount    decimal.Decimal
	Items          []CheckoutLine
}

type CheckoutService struct {
	Prods *repos.ProductRepo
	Sales *repos.SaleRepo
}

func NewCheckoutService(prods *repos.ProductRepo, sales *repos.SaleRepo) *CheckoutService {
	return &CheckoutService{Prods: prods, Sales: sales}
}

// Checkout validates every cart line before any write, then commits the sale,
// its transactions, and the stock decrements in one storage transaction.
// Validation failures never mutate anything. The employee username is
// recorded as-is and never checked against the users table.
func (s *CheckoutService) Checkout(employee string, items []CheckoutItem) (CheckoutResult, error) {
	if employee == "" || len(items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	type line struct {
		product   domain.Product
		quantity  int
		unitPrice decimal.Decimal
		itemTotal decimal.Decimal
	}

	lines := make([]line, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		if it.ProductName == "" || it.QuantitySold == 0 {
			return CheckoutResult{}, ErrBadItem
		}
		if it.QuantitySold < 0 {
			return CheckoutResult{}, ErrBadQuantity
		}
		p, err := s.Prods.ByName(it.ProductName)
		if errors.Is(err, sql.ErrNoRows) {
			return CheckoutResult{}, &UnknownProductError{Name: it.ProductName}
		}
		if err != nil {
			return CheckoutResult{}, err
		}
		if p.QuantityInStock < it.QuantitySold {
			return CheckoutResult{}, &repos.InsufficientStockError{
				Product:   p.Name,
				Available: p.QuantityInStock,
				Requested: it.QuantitySold,
			}
		}
		itemTotal := p.Price.Mul(decimal.NewFromInt(int64(it.QuantitySold)))
		total = total.Add(itemTotal)
		lines = append(lines, line{product: p, quantity: it.QuantitySold, unitPrice: p.Price, itemTotal: itemTotal})
	}

	sale := domain.Sale{
		ID:          uuid.NewString(),
		Employee:    employee,
		TotalAmount: total,
		SaleDate:    domain.FormatTime(time.Now()),
	}

	txs := make([]domain.Transaction, 0, len(lines))
	names := make(map[string]string, len(lines))
	for _, ln := range lines {
		txs = append(txs, domain.Transaction{
			ID:           uuid.NewString(),
			SaleID:       sale.ID,
			ProductID:    ln.product.ID,
			QuantitySold: ln.quantity,
			PriceAtSale:  ln.unitPrice,
		})
		names[ln.product.ID] = ln.product.Name
	}

	if err := s.Sales.CreateWithItems(sale, txs, names); err != nil {
		return CheckoutResult{}, err
	}

	res := CheckoutResult{SaleID: sale.ID, TotalAmount: total}
	for i, ln := range lines {
		res.TransactionIDs = append(res.TransactionIDs, txs[i].ID)
		res.Items = append(res.Items, CheckoutLine{
			Product:        ln.product.Name,
			SoldQuantity:   ln.quantity,
			PricePerUnit:   ln.unitPrice,
			ItemTotal:      ln.itemTotal,
			RemainingStock: ln.product.QuantityInStock - ln.quantity,
		})
	}
	return res, nil
}
