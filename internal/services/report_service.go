package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

// SaleView is a sale as it crosses the API boundary: money as a fixed
// 2-decimal string, never a binary float.
type SaleView struct {
	SaleID      string `json:"sale_id"`
	Employee    string `json:"employee_username"`
	TotalAmount string `json:"total_amount"`
	SaleDate    string `json:"sale_date"`
}

type WindowReport struct {
	SalesCount  int        `json:"sales_count"`
	TotalAmount string     `json:"total_amount"`
	Sales       []SaleView `json:"sales"`
}

type WeekBucket struct {
	Year        int    `json:"year"`
	Week        int    `json:"week"`
	SalesCount  int    `json:"sales_count"`
	TotalAmount string `json:"total_amount"`
}

type MonthBucket struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	SalesCount  int    `json:"sales_count"`
	TotalAmount string `json:"total_amount"`
}

type YearBucket struct {
	Year        int    `json:"year"`
	SalesCount  int    `json:"sales_count"`
	TotalAmount string `json:"total_amount"`
}

// ReportService computes time-windowed and time-bucketed sales summaries.
// All sums run in decimal; floats never touch money.
type ReportService struct {
	Sales *repos.SaleRepo
	// Now is the process clock; overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func NewReportService(sales *repos.SaleRepo) *ReportService {
	return &ReportService{Sales: sales}
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// SellThisWeek covers the trailing 7 days, window start inclusive.
func (s *ReportService) SellThisWeek() (WindowReport, error) {
	end := s.now()
	return s.window(end.Add(-7*24*time.Hour), end)
}

// SellThisMonth covers the current calendar month so far.
func (s *ReportService) SellThisMonth() (WindowReport, error) {
	end := s.now()
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.window(start, end)
}

// SellThisYear covers the current calendar year so far.
func (s *ReportService) SellThisYear() (WindowReport, error) {
	end := s.now()
	start := time.Date(end.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return s.window(start, end)
}

func (s *ReportService) window(start, end time.Time) (WindowReport, error) {
	sales, err := s.Sales.Between(start, end)
	if err != nil {
		return WindowReport{}, err
	}
	total := decimal.Zero
	views := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		total = total.Add(sale.TotalAmount)
		views = append(views, NewSaleView(sale))
	}
	return WindowReport{SalesCount: len(sales), TotalAmount: total.StringFixed(2), Sales: views}, nil
}

func NewSaleView(s domain.Sale) SaleView {
	return SaleView{
		SaleID:      s.ID,
		Employee:    s.Employee,
		TotalAmount: s.TotalAmount.StringFixed(2),
		SaleDate:    s.SaleDate,
	}
}

type bucketKey struct{ year, sub int }

type bucketAgg struct {
	count int
	total decimal.Decimal
}

// groupSales buckets every sale by the given key. Only buckets with at least
// one sale exist; parse failures on stored dates are skipped.
func (s *ReportService) groupSales(key func(time.Time) bucketKey) (map[bucketKey]bucketAgg, []bucketKey, error) {
	sales, err := s.Sales.List()
	if err != nil {
		return nil, nil, err
	}
	agg := make(map[bucketKey]bucketAgg)
	for _, sale := range sales {
		t, err := domain.ParseTime(sale.SaleDate)
		if err != nil {
			continue
		}
		k := key(t)
		a := agg[k]
		a.count++
		a.total = a.total.Add(sale.TotalAmount)
		agg[k] = a
	}
	keys := make([]bucketKey, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].sub < keys[j].sub
	})
	return agg, keys, nil
}

// SellPerWeek groups all sales by (calendar year, ISO week), ascending.
func (s *ReportService) SellPerWeek() ([]WeekBucket, error) {
	agg, keys, err := s.groupSales(func(t time.Time) bucketKey {
		_, week := t.ISOWeek()
		return bucketKey{year: t.Year(), sub: week}
	})
	if err != nil {
		return nil, err
	}
	out := make([]WeekBucket, 0, len(keys))
	for _, k := range keys {
		a := agg[k]
		out = append(out, WeekBucket{Year: k.year, Week: k.sub, SalesCount: a.count, TotalAmount: a.total.StringFixed(2)})
	}
	return out, nil
}

// SellPerMonth groups all sales by (calendar year, month), ascending.
func (s *ReportService) SellPerMonth() ([]MonthBucket, error) {
	agg, keys, err := s.groupSales(func(t time.Time) bucketKey {
		return bucketKey{year: t.Year(), sub: int(t.Month())}
	})
	if err != nil {
		return nil, err
	}
	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		a := agg[k]
		out = append(out, MonthBucket{Year: k.year, Month: k.sub, SalesCount: a.count, TotalAmount: a.total.StringFixed(2)})
	}
	return out, nil
}

// SellPerYear groups all sales by calendar year, ascending.
func (s *ReportService) SellPerYear() ([]YearBucket, error) {
	agg, keys, err := s.groupSales(func(t time.Time) bucketKey {
		return bucketKey{year: t.Year()}
	})
	if err != nil {
		return nil, err
	}
	out := make([]YearBucket, 0, len(keys))
	for _, k := range keys {
		a := agg[k]
		out = append(out, YearBucket{Year: k.year, SalesCount: a.count, TotalAmount: a.total.StringFixed(2)})
	}
	return out, nil
}
