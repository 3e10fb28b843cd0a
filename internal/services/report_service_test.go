package services_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

func seedSale(t *testing.T, db *sqlx.DB, id, employee, total string, at time.Time) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO sales(id,employee,total_amount,sale_date) VALUES(?,?,?,?)`,
		id, employee, total, domain.FormatTime(at))
	if err != nil {
		t.Fatal(err)
	}
}

func reportSvc(db *sqlx.DB, now time.Time) *services.ReportService {
	svc := services.NewReportService(repos.NewSaleRepo(db))
	svc.Now = func() time.Time { return now }
	return svc
}

func TestSellThisWeek_WindowStartInclusive(t *testing.T) {
	db := memdb(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-7 * 24 * time.Hour)

	seedSale(t, db, "s-edge", "rohit", "10.00", start)
	seedSale(t, db, "s-before", "rohit", "10.00", start.Add(-time.Microsecond))
	seedSale(t, db, "s-inside", "rohit", "5.50", now.Add(-time.Hour))

	rep, err := reportSvc(db, now).SellThisWeek()
	if err != nil {
		t.Fatal(err)
	}
	if rep.SalesCount != 2 {
		t.Fatalf("want 2 sales in window, got %d: %+v", rep.SalesCount, rep.Sales)
	}
	if rep.TotalAmount != "15.50" {
		t.Fatalf("want total 15.50, got %s", rep.TotalAmount)
	}
	for _, s := range rep.Sales {
		if s.SaleID == "s-before" {
			t.Fatal("sale 1µs before the window start was included")
		}
	}
}

func TestSellThisMonth_CalendarStart(t *testing.T) {
	db := memdb(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	seedSale(t, db, "s-first", "rohit", "1.00", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-may", "rohit", "1.00", time.Date(2024, 5, 31, 23, 59, 59, 999999000, time.UTC))

	rep, err := reportSvc(db, now).SellThisMonth()
	if err != nil {
		t.Fatal(err)
	}
	if rep.SalesCount != 1 || rep.Sales[0].SaleID != "s-first" {
		t.Fatalf("month window wrong: %+v", rep)
	}
}

func TestSellThisYear_CalendarStart(t *testing.T) {
	db := memdb(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	seedSale(t, db, "s-jan", "rohit", "2.00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-dec23", "rohit", "2.00", time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC))

	rep, err := reportSvc(db, now).SellThisYear()
	if err != nil {
		t.Fatal(err)
	}
	if rep.SalesCount != 1 || rep.Sales[0].SaleID != "s-jan" {
		t.Fatalf("year window wrong: %+v", rep)
	}
}

func TestSellPerYear_OneBucketPerYear(t *testing.T) {
	db := memdb(t)
	seedSale(t, db, "s-1", "rohit", "10.00", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-2", "rohit", "20.00", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC))

	buckets, err := reportSvc(db, time.Now()).SellPerYear()
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 1 {
		t.Fatalf("want one bucket for 2023, got %+v", buckets)
	}
	b := buckets[0]
	if b.Year != 2023 || b.SalesCount != 2 || b.TotalAmount != "30.00" {
		t.Fatalf("bad bucket: %+v", b)
	}
}

func TestSellPerMonth_AscendingAndSparse(t *testing.T) {
	db := memdb(t)
	seedSale(t, db, "s-1", "rohit", "1.00", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-2", "rohit", "1.00", time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-3", "rohit", "1.00", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

	buckets, err := reportSvc(db, time.Now()).SellPerMonth()
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 3 {
		t.Fatalf("empty months must not appear: %+v", buckets)
	}
	want := [][2]int{{2023, 11}, {2024, 1}, {2024, 2}}
	for i, w := range want {
		if buckets[i].Year != w[0] || buckets[i].Month != w[1] {
			t.Fatalf("buckets not ascending: %+v", buckets)
		}
	}
}

func TestSellPerWeek_ISOWeekKey(t *testing.T) {
	db := memdb(t)
	// Mon 2024-06-10 and Sun 2024-06-16 share ISO week 24.
	seedSale(t, db, "s-mon", "rohit", "3.00", time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-sun", "rohit", "4.00", time.Date(2024, 6, 16, 21, 0, 0, 0, time.UTC))
	seedSale(t, db, "s-next", "rohit", "5.00", time.Date(2024, 6, 17, 8, 0, 0, 0, time.UTC))

	buckets, err := reportSvc(db, time.Now()).SellPerWeek()
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 2 {
		t.Fatalf("want weeks 24 and 25, got %+v", buckets)
	}
	if buckets[0].Week != 24 || buckets[0].SalesCount != 2 || buckets[0].TotalAmount != "7.00" {
		t.Fatalf("bad week-24 bucket: %+v", buckets[0])
	}
	if buckets[1].Week != 25 || buckets[1].TotalAmount != "5.00" {
		t.Fatalf("bad week-25 bucket: %+v", buckets[1])
	}
}

func TestWindowTotals_DecimalExact(t *testing.T) {
	db := memdb(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"s-a", "s-b", "s-c"} {
		seedSale(t, db, id, "rohit", "0.10", now.Add(-time.Duration(i+1)*time.Hour))
	}

	rep, err := reportSvc(db, now).SellThisWeek()
	if err != nil {
		t.Fatal(err)
	}
	if rep.TotalAmount != "0.30" {
		t.Fatalf("decimal sum drifted: %s", rep.TotalAmount)
	}
}
