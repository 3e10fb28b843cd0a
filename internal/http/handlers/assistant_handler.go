package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/assistant"
	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
)

type AssistantHandler struct {
	// Assist is nil when no model backend is configured.
	Assist *assistant.Assistant
}

type assistantReq struct {
	Query string `json:"query"`
}

func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req assistantReq
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return fail(c, fiber.StatusBadRequest, "Query is required.")
	}
	if h.Assist == nil {
		return fail(c, fiber.StatusServiceUnavailable, "AI assistant is not configured.")
	}

	answer, err := h.Assist.Answer(c.Context(), req.Query)
	if err != nil {
		applog.Error(c, "assistant.fail", err, map[string]any{"query": req.Query})
		if errors.Is(err, assistant.ErrNoFinalAnswer) {
			return fail(c, fiber.StatusInternalServerError, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	applog.Info(c, "assistant.answer", map[string]any{"query": req.Query})
	return c.JSON(fiber.Map{"answer": answer})
}
