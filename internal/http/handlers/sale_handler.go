package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

type SaleHandler struct {
	Ledger *services.LedgerService
}

type saleAddReq struct {
	EmployeeUsername string           `json:"employee_username"`
	TotalAmount      *decimal.Decimal `json:"total_amount"`
}

// Add records a manual sale header. The employee username is stored without
// any lookup against the users table.
func (h *SaleHandler) Add(c *fiber.Ctx) error {
	var req saleAddReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid total amount")
	}
	if req.EmployeeUsername == "" || req.TotalAmount == nil {
		return fail(c, fiber.StatusBadRequest, "Employee username and total amount are required")
	}
	saleID, err := h.Ledger.AddSale(req.EmployeeUsername, *req.TotalAmount)
	if err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "sale.add", map[string]any{"sale_id": saleID, "employee": req.EmployeeUsername})
	return success(c, fiber.StatusCreated, fiber.Map{
		"message": "Sale added successfully",
		"sale_id": saleID,
	})
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.Ledger.ListSales()
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"sales": sales})
}

func (h *SaleHandler) Search(c *fiber.Ctx) error {
	username := c.Query("employee_username")
	if username == "" {
		var req struct {
			EmployeeUsername string `json:"employee_username"`
		}
		_ = c.BodyParser(&req)
		username = req.EmployeeUsername
	}
	if username == "" {
		return fail(c, fiber.StatusBadRequest, "Employee username is required")
	}
	sales, err := h.Ledger.SalesByEmployee(username)
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"sales": sales})
}
