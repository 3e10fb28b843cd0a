package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/validate"
)

type UserHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	username, ok := validate.Username(req.Username)
	if !ok || req.FullName == "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "username"})
		return fail(c, fiber.StatusBadRequest, "Full name and a valid username are required")
	}
	if !validate.Password(req.Password) {
		applog.Security(c, "validation.fail", map[string]any{"field": "password"})
		return fail(c, fiber.StatusBadRequest, "Password must be 8-72 characters with letters and digits")
	}
	if req.Password != req.ConfirmPassword {
		return fail(c, fiber.StatusBadRequest, "Passwords do not match")
	}
	// Admin accounts are never minted through the public register path.
	if req.Role == domain.RoleAdmin {
		applog.Security(c, "user.register.admin.denied", map[string]any{"username": username})
		return fail(c, fiber.StatusForbidden, "Admin should be limited")
	}
	if err := h.Auth.Register(req.FullName, username, req.Role, req.Password); err != nil {
		if err == services.ErrBadRole {
			return fail(c, fiber.StatusBadRequest, "Invalid role")
		}
		return failFromErr(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"username": username, "role": req.Role})
	return success(c, fiber.StatusCreated, fiber.Map{"message": "User registered successfully"})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Username and password required")
	}
	u, pair, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": req.Username})
		return fail(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	applog.Audit(c, "auth.login.success", map[string]any{"username": u.Username})
	return success(c, fiber.StatusOK, fiber.Map{
		"access":   pair.Access,
		"refresh":  pair.Refresh,
		"username": u.Username,
		"role":     u.Role,
	})
}

type passwordChangeReq struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword rotates a password after proving knowledge of the old one.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req passwordChangeReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.OldPassword == "" || req.NewPassword == "" {
		return fail(c, fiber.StatusBadRequest, "Username, old password, and new password are required")
	}
	if !validate.Password(req.NewPassword) {
		return fail(c, fiber.StatusBadRequest, "Password must be 8-72 characters with letters and digits")
	}
	if err := h.Auth.ChangePassword(req.Username, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "user.password.change.fail", map[string]any{"username": req.Username})
			return fail(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return failFromErr(c, err)
	}
	applog.Audit(c, "user.password.change", map[string]any{"username": req.Username})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Password changed successfully"})
}

// Delete removes a staff account by username. Admin accounts are refused.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		var req struct {
			Username string `json:"username"`
		}
		_ = c.BodyParser(&req)
		username = req.Username
	}
	if username == "" {
		return fail(c, fiber.StatusBadRequest, "Username is required")
	}
	if err := h.Auth.DeleteUser(username); err != nil {
		if errors.Is(err, services.ErrAdminProtected) {
			applog.Security(c, "user.delete.admin.denied", map[string]any{"username": username})
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		return failFromErr(c, err)
	}
	applog.Audit(c, "user.delete", map[string]any{"username": username})
	return success(c, fiber.StatusOK, fiber.Map{"message": "User deleted successfully"})
}

type refreshReq struct {
	Refresh string `json:"refresh"`
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	var req refreshReq
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return fail(c, fiber.StatusBadRequest, "Refresh token is required")
	}
	pair, err := h.Auth.Refresh(req.Refresh)
	if err != nil {
		applog.Security(c, "auth.refresh.fail", nil)
		return fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// List is the admin roster: every staff account, hashes never serialized.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Auth.ListUsers()
	if err != nil {
		return failFromErr(c, err)
	}
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"full_name": u.FullName,
			"username":  u.Username,
			"role":      u.Role,
		})
	}
	return success(c, fiber.StatusOK, fiber.Map{"users": out})
}

// Me reports the authenticated account. RequireAuth has already stashed the
// claims in locals.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	role, _ := c.Locals("role").(string)
	return c.JSON(fiber.Map{"username": username, "role": role})
}
