// Package assistant maps natural-language questions onto the reporting and
// ledger read endpoints through a closed set of callable tools.
package assistant

import (
	"fmt"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

// ToolName identifies one callable tool. The set is closed: registries only
// accept the constants below, so a missing handler is a wiring bug caught at
// startup, not a runtime lookup miss.
type ToolName string

const (
	ToolSellThisWeek    ToolName = "sell_this_week"
	ToolSellThisMonth   ToolName = "sell_this_month"
	ToolSellThisYear    ToolName = "sell_this_year"
	ToolSellPerWeek     ToolName = "sell_per_week"
	ToolSellPerMonth    ToolName = "sell_per_month"
	ToolSellPerYear     ToolName = "sell_per_year"
	ToolProductList     ToolName = "product_list"
	ToolTransactionList ToolName = "transaction_list"
	ToolEmployeeSearch  ToolName = "transaction_search_with_employee"
)

var knownTools = map[ToolName]bool{
	ToolSellThisWeek:    true,
	ToolSellThisMonth:   true,
	ToolSellThisYear:    true,
	ToolSellPerWeek:     true,
	ToolSellPerMonth:    true,
	ToolSellPerYear:     true,
	ToolProductList:     true,
	ToolTransactionList: true,
	ToolEmployeeSearch:  true,
}

type Args map[string]any

type ToolFunc func(Args) (any, error)

// Decl describes a tool to the model. RequiredParams is empty for the
// zero-argument tools.
type Decl struct {
	Name           ToolName `json:"name"`
	Description    string   `json:"description"`
	RequiredParams []string `json:"required_params,omitempty"`
}

type Registry struct {
	tools map[ToolName]ToolFunc
	decls []Decl
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[ToolName]ToolFunc)}
}

// Register wires one tool. Names outside the closed set are a programming
// error.
func (r *Registry) Register(d Decl, fn ToolFunc) {
	if !knownTools[d.Name] {
		panic(fmt.Sprintf("assistant: unknown tool %q", d.Name))
	}
	r.tools[d.Name] = fn
	r.decls = append(r.decls, d)
}

func (r *Registry) Declarations() []Decl { return r.decls }

// Dispatch runs one tool call and always returns a JSON-marshalable value:
// unknown names and tool failures become structured per-call errors rather
// than Go errors, so a misbehaving model cannot fail the conversation.
func (r *Registry) Dispatch(name string, args Args) any {
	fn, ok := r.tools[ToolName(name)]
	if !ok {
		return map[string]any{"error": fmt.Sprintf("Unknown function '%s'", name)}
	}
	res, err := fn(args)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"result": res}
}

func employeeArg(args Args) (string, error) {
	v, ok := args["employee_username"].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("employee_username is required")
	}
	return v, nil
}

// DefaultRegistry exposes the reporting, catalog, and ledger reads the
// assistant may call. Every tool except the employee search takes no
// parameters.
func DefaultRegistry(reports *services.ReportService, catalog *services.CatalogService, ledger *services.LedgerService) *Registry {
	r := NewRegistry()

	r.Register(Decl{Name: ToolSellThisWeek, Description: "Get all sales from the last 7 days."},
		func(Args) (any, error) { return reports.SellThisWeek() })
	r.Register(Decl{Name: ToolSellThisMonth, Description: "Get all sales for the current calendar month."},
		func(Args) (any, error) { return reports.SellThisMonth() })
	r.Register(Decl{Name: ToolSellThisYear, Description: "Get all sales for the current calendar year."},
		func(Args) (any, error) { return reports.SellThisYear() })
	r.Register(Decl{Name: ToolSellPerWeek, Description: "Get sales grouped by week for all time."},
		func(Args) (any, error) { return reports.SellPerWeek() })
	r.Register(Decl{Name: ToolSellPerMonth, Description: "Get sales grouped by month for all time."},
		func(Args) (any, error) { return reports.SellPerMonth() })
	r.Register(Decl{Name: ToolSellPerYear, Description: "Get sales grouped by year for all time."},
		func(Args) (any, error) { return reports.SellPerYear() })
	r.Register(Decl{Name: ToolProductList, Description: "Get a list of all products in the store."},
		func(Args) (any, error) { return catalog.ListProducts() })
	r.Register(Decl{Name: ToolTransactionList, Description: "Get a list of all transactions ever made."},
		func(Args) (any, error) { return ledger.ListTransactions() })
	r.Register(Decl{
		Name:           ToolEmployeeSearch,
		Description:    "Get sales/transactions for a specific employee.",
		RequiredParams: []string{"employee_username"},
	}, func(args Args) (any, error) {
		username, err := employeeArg(args)
		if err != nil {
			return nil, err
		}
		return ledger.EmployeeSales(username)
	})

	return r
}
