package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

type TransactionHandler struct {
	Checkout *services.CheckoutService
	Ledger   *services.LedgerService
}

type checkoutReq struct {
	Employee string `json:"employee"`
	Items    []struct {
		ProductName  string `json:"product_name"`
		QuantitySold int    `json:"quantity_sold"`
	} `json:"items"`
}

// Add is the checkout entry point: one sale plus one transaction per cart
// line, committed together with the stock decrements.
func (h *TransactionHandler) Add(c *fiber.Ctx) error {
	var req checkoutReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Employee == "" || len(req.Items) == 0 {
		return fail(c, fiber.StatusBadRequest, "Employee and items are required")
	}

	items := make([]services.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.CheckoutItem{
			ProductName:  it.ProductName,
			QuantitySold: it.QuantitySold,
		})
	}

	res, err := h.Checkout.Checkout(req.Employee, items)
	if err != nil {
		applog.Security(c, "checkout.fail", map[string]any{"employee": req.Employee, "error": err.Error()})
		return failFromErr(c, err)
	}

	lines := make([]fiber.Map, 0, len(res.Items))
	for _, it := range res.Items {
		lines = append(lines, fiber.Map{
			"product":         it.Product,
			"sold_quantity":   it.SoldQuantity,
			"price_per_unit":  it.PricePerUnit.StringFixed(2),
			"item_total":      it.ItemTotal.StringFixed(2),
			"remaining_stock": it.RemainingStock,
		})
	}
	applog.Audit(c, "checkout.commit", map[string]any{
		"sale_id":      res.SaleID,
		"employee":     req.Employee,
		"total_amount": res.TotalAmount.StringFixed(2),
		"items":        len(lines),
	})
	return success(c, fiber.StatusCreated, fiber.Map{
		"message":         "Sale with multiple transactions added successfully, stock updated",
		"sale_id":         res.SaleID,
		"transaction_ids": res.TransactionIDs,
		"total_amount":    res.TotalAmount.StringFixed(2),
		"items":           lines,
	})
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txs, err := h.Ledger.ListTransactions()
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"transactions": txs})
}

// EmployeeTransactions returns one employee's sales with nested line items.
func (h *TransactionHandler) EmployeeTransactions(c *fiber.Ctx) error {
	username := c.Query("employee_username")
	if username == "" {
		var req struct {
			EmployeeUsername string `json:"employee_username"`
		}
		_ = c.BodyParser(&req)
		username = req.EmployeeUsername
	}
	if username == "" {
		return fail(c, fiber.StatusBadRequest, "employee_username is required")
	}
	sales, err := h.Ledger.EmployeeSales(username)
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"employee_username": username,
		"sales":             sales,
	})
}
