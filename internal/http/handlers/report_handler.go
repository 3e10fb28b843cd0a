package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func (h *ReportHandler) windowReport(c *fiber.Ctx, fn func() (services.WindowReport, error)) error {
	rep, err := fn()
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"sales_count":  rep.SalesCount,
		"total_amount": rep.TotalAmount,
		"sales":        rep.Sales,
	})
}

func (h *ReportHandler) SellThisWeek(c *fiber.Ctx) error {
	return h.windowReport(c, h.Reports.SellThisWeek)
}

func (h *ReportHandler) SellThisMonth(c *fiber.Ctx) error {
	return h.windowReport(c, h.Reports.SellThisMonth)
}

func (h *ReportHandler) SellThisYear(c *fiber.Ctx) error {
	return h.windowReport(c, h.Reports.SellThisYear)
}

func (h *ReportHandler) SellPerWeek(c *fiber.Ctx) error {
	data, err := h.Reports.SellPerWeek()
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": data})
}

func (h *ReportHandler) SellPerMonth(c *fiber.Ctx) error {
	data, err := h.Reports.SellPerMonth()
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": data})
}

func (h *ReportHandler) SellPerYear(c *fiber.Ctx) error {
	data, err := h.Reports.SellPerYear()
	if err != nil {
		return failFromErr(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": data})
}
