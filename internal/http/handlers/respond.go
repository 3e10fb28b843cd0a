package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

// Every error crosses the boundary as {"status":"error","message":...}.
func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}

func success(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// failFromErr maps service errors to HTTP: not-found 404, conflict 409,
// validation/stock 400, anything else a generic 500.
func failFromErr(c *fiber.Ctx, err error) error {
	var stockErr *repos.InsufficientStockError
	var unknownProduct *services.UnknownProductError

	switch {
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrNoSales),
		errors.Is(err, services.ErrNoTransactions),
		errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &unknownProduct):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrProductExists),
		errors.Is(err, services.ErrUsernameTaken):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &stockErr),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrBadItem),
		errors.Is(err, services.ErrBadQuantity),
		errors.Is(err, services.ErrNegativeStock):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Error(c, "server.error", err, nil)
	return fail(c, fiber.StatusInternalServerError, "internal server error")
}
