package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

var (
	ErrNoSales        = errors.New("No sales found for this employee")
	ErrNoTransactions = errors.New("No transactions found")
)

type TransactionView struct {
	TransactionID string `json:"transaction_id"`
	SaleID        string `json:"sale_id"`
	Employee      string `json:"employee,omitempty"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	QuantitySold  int    `json:"quantity_sold"`
	PriceAtSale   string `json:"price_at_sale"`
}

// EmployeeSaleView is one sale with its line items nested, for the
// per-employee transaction search.
type EmployeeSaleView struct {
	SaleID       string            `json:"sale_id"`
	TotalAmount  string            `json:"total_amount"`
	SaleDate     string            `json:"sale_date"`
	Transactions []TransactionView `json:"transactions"`
}

type LedgerService struct {
	Sales *repos.SaleRepo
}

func NewLedgerService(sales *repos.SaleRepo) *LedgerService {
	return &LedgerService{Sales: sales}
}

// AddSale records a bare sale header (the manual entry path; checkout is the
// usual producer of sales). The employee is stored without lookup.
func (s *LedgerService) AddSale(employee string, total decimal.Decimal) (string, error) {
	sale := domain.Sale{
		ID:          uuid.NewString(),
		Employee:    employee,
		TotalAmount: total,
		SaleDate:    domain.FormatTime(time.Now()),
	}
	if err := s.Sales.Create(sale); err != nil {
		return "", err
	}
	return sale.ID, nil
}

func (s *LedgerService) ListSales() ([]SaleView, error) {
	sales, err := s.Sales.List()
	if err != nil {
		return nil, err
	}
	out := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		out = append(out, NewSaleView(sale))
	}
	return out, nil
}

func (s *LedgerService) SalesByEmployee(username string) ([]SaleView, error) {
	sales, err := s.Sales.ByEmployee(username)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, ErrNoSales
	}
	out := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		out = append(out, NewSaleView(sale))
	}
	return out, nil
}

func (s *LedgerService) ListTransactions() ([]TransactionView, error) {
	rows, err := s.Sales.ListTransactions()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}
	out := make([]TransactionView, 0, len(rows))
	for _, r := range rows {
		out = append(out, newTransactionView(r, true))
	}
	return out, nil
}

// EmployeeSales returns every sale of one employee with its transactions
// nested, oldest first.
func (s *LedgerService) EmployeeSales(username string) ([]EmployeeSaleView, error) {
	sales, err := s.Sales.ByEmployee(username)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, ErrNoSales
	}
	out := make([]EmployeeSaleView, 0, len(sales))
	for _, sale := range sales {
		rows, err := s.Sales.TransactionsBySale(sale.ID)
		if err != nil {
			return nil, err
		}
		txs := make([]TransactionView, 0, len(rows))
		for _, r := range rows {
			txs = append(txs, newTransactionView(r, false))
		}
		out = append(out, EmployeeSaleView{
			SaleID:       sale.ID,
			TotalAmount:  sale.TotalAmount.StringFixed(2),
			SaleDate:     sale.SaleDate,
			Transactions: txs,
		})
	}
	return out, nil
}

func newTransactionView(r repos.TransactionRow, withEmployee bool) TransactionView {
	v := TransactionView{
		TransactionID: r.ID,
		SaleID:        r.SaleID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		QuantitySold:  r.QuantitySold,
		PriceAtSale:   r.PriceAtSale.StringFixed(2),
	}
	if withEmployee {
		v.Employee = r.Employee
	}
	return v
}
