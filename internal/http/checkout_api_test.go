package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/assistant"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/config"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/http/handlers"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

// newTestApp stands up the API against a fresh seeded in-memory database.
func newTestApp(t *testing.T, model assistant.Model) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, config.Config{JWTSecret: "test-secret"}, model)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/product/add", deps.ProductHandler.Add)
	api.Put("/product/update", deps.ProductHandler.Update)
	api.Delete("/product/delete", deps.ProductHandler.Delete)
	api.Get("/product/list", deps.ProductHandler.List)
	api.Get("/product/search", deps.ProductHandler.Search)
	api.Post("/category/add", deps.CategoryHandler.Add)
	api.Post("/category_add", deps.CategoryHandler.Add)
	api.Put("/category/update", deps.CategoryHandler.Update)
	api.Delete("/category/delete", deps.CategoryHandler.Delete)
	api.Get("/category/list", deps.CategoryHandler.List)
	api.Get("/category/search", deps.CategoryHandler.Search)
	api.Post("/sale/add", deps.SaleHandler.Add)
	api.Get("/sale/list", deps.SaleHandler.List)
	api.Get("/sale/search", deps.SaleHandler.Search)
	api.Get("/sale/sell_this_week", deps.ReportHandler.SellThisWeek)
	api.Get("/sale/sell_per_year", deps.ReportHandler.SellPerYear)
	api.Post("/transaction/add", deps.TransactionHandler.Add)
	api.Get("/transaction/list", deps.TransactionHandler.List)
	api.Get("/transaction/employee_transaction", deps.TransactionHandler.EmployeeTransactions)
	api.Post("/users/register", deps.UserHandler.Register)
	api.Post("/users/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
	}), deps.UserHandler.Login)
	api.Post("/users/password/change", deps.UserHandler.ChangePassword)
	api.Delete("/users/delete", deps.UserHandler.Delete)
	api.Post("/token/refresh", deps.UserHandler.Refresh)
	api.Get("/users/me", handlers.RequireAuth(deps.Auth), deps.UserHandler.Me)
	api.Get("/users/list", handlers.RequireAuth(deps.Auth),
		handlers.RequireRole(domain.RoleAdmin), deps.UserHandler.List)
	api.Post("/assistant", deps.AssistantHandler.Ask)
	return app, db
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("bad json %q: %v", raw, err)
	}
	return m
}

func TestCheckoutEndpoint_Success(t *testing.T) {
	app, db := newTestApp(t, nil)

	// seeded stock: Laptop 999.99 x10, Notebook 2.50 x200
	resp, err := app.Test(jsonReq("POST", "/api/transaction/add", `{
		"employee": "admin",
		"items": [
			{"product_name": "Laptop", "quantity_sold": 1},
			{"product_name": "Notebook", "quantity_sold": 2}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["status"] != "success" || body["total_amount"] != "1004.99" {
		t.Fatalf("bad checkout response: %v", body)
	}
	items := body["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("want 2 line items, got %v", items)
	}
	first := items[0].(map[string]any)
	if first["product"] != "Laptop" || first["remaining_stock"] != float64(9) {
		t.Fatalf("bad line item: %v", first)
	}

	var stock int
	if err := db.Get(&stock, `SELECT quantity_in_stock FROM products WHERE name='Notebook'`); err != nil {
		t.Fatal(err)
	}
	if stock != 198 {
		t.Fatalf("notebook stock after checkout: %d", stock)
	}
}

func TestCheckoutEndpoint_InsufficientStock(t *testing.T) {
	app, db := newTestApp(t, nil)

	resp, err := app.Test(jsonReq("POST", "/api/transaction/add", `{
		"employee": "admin",
		"items": [{"product_name": "Laptop", "quantity_sold": 999}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["status"] != "error" {
		t.Fatalf("bad error envelope: %v", body)
	}
	if body["message"] != "Not enough stock for Laptop. Available: 10, Requested: 999" {
		t.Fatalf("bad message: %v", body["message"])
	}

	var stock int
	if err := db.Get(&stock, `SELECT quantity_in_stock FROM products WHERE name='Laptop'`); err != nil {
		t.Fatal(err)
	}
	if stock != 10 {
		t.Fatal("stock mutated on rejected checkout")
	}
}

func TestCheckoutEndpoint_UnknownProduct(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(jsonReq("POST", "/api/transaction/add", `{
		"employee": "admin",
		"items": [{"product_name": "Hoverboard", "quantity_sold": 1}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	if body := decode(t, resp); body["message"] != "Product 'Hoverboard' not found" {
		t.Fatalf("bad message: %v", body)
	}
}

func TestCheckoutEndpoint_MissingFields(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(jsonReq("POST", "/api/transaction/add", `{"employee": "admin", "items": []}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for empty cart, got %d", resp.StatusCode)
	}
}

func TestTransactionList_ReflectsCheckout(t *testing.T) {
	app, _ := newTestApp(t, nil)

	// empty ledger first
	resp, err := app.Test(httptest.NewRequest("GET", "/api/transaction/list", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 on empty ledger, got %d", resp.StatusCode)
	}

	if _, err := app.Test(jsonReq("POST", "/api/transaction/add", `{
		"employee": "admin",
		"items": [{"product_name": "Headphones", "quantity_sold": 2}]
	}`)); err != nil {
		t.Fatal(err)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/transaction/list", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body := decode(t, resp)
	txs := body["transactions"].([]any)
	if len(txs) != 1 {
		t.Fatalf("want 1 transaction, got %v", txs)
	}
	tx := txs[0].(map[string]any)
	if tx["product_name"] != "Headphones" || tx["price_at_sale"] != "49.99" || tx["employee"] != "admin" {
		t.Fatalf("bad transaction view: %v", tx)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/transaction/employee_transaction?employee_username=admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	grouped := decode(t, resp)
	sales := grouped["sales"].([]any)
	if len(sales) != 1 {
		t.Fatalf("want 1 sale for admin, got %v", sales)
	}
	if grouped["employee_username"] != "admin" {
		t.Fatalf("bad envelope: %v", grouped)
	}
}
