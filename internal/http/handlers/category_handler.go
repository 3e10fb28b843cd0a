package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryReq struct {
	CategoryName    string `json:"category_name"`
	NewCategoryName string `json:"new_category_name"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	NewLocation     string `json:"new_location"`
}

// categoryName pulls the target name from the query string or body; search
// and delete accept either.
func categoryName(c *fiber.Ctx) string {
	if q := c.Query("category_name"); q != "" {
		return q
	}
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return ""
	}
	return req.CategoryName
}

func (h *CategoryHandler) Add(c *fiber.Ctx) error {
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	name, ok := validate.Name(req.CategoryName)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category_name"})
		return fail(c, fiber.StatusBadRequest, "Category name is required")
	}
	if err := h.Catalog.AddCategory(name, req.Description, req.Location); err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "category.add", map[string]any{"category_name": name})
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Category added successfully"})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.CategoryName == "" || req.NewCategoryName == "" {
		return fail(c, fiber.StatusBadRequest, "Category name and new category name are required")
	}
	newName, ok := validate.Name(req.NewCategoryName)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Category name and new category name are required")
	}
	if err := h.Catalog.UpdateCategory(req.CategoryName, newName, req.Description, req.NewLocation); err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "category.update", map[string]any{"category_name": req.CategoryName, "new_category_name": newName})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Category updated successfully"})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	name := categoryName(c)
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Category name is required")
	}
	if err := h.Catalog.DeleteCategory(name); err != nil {
		return failFromErr(c, err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_name": name})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return failFromErr(c, err)
	}
	out := make([]fiber.Map, 0, len(cats))
	for _, cat := range cats {
		out = append(out, fiber.Map{
			"category_name": cat.Name,
			"description":   cat.Description,
			"location":      cat.Location,
		})
	}
	return c.JSON(out)
}

func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	name := categoryName(c)
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Category name is required")
	}
	cat, products, err := h.Catalog.SearchCategory(name)
	if err != nil {
		return failFromErr(c, err)
	}
	productList := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		productList = append(productList, fiber.Map{
			"product_name":      p.Name,
			"price":             p.Price.StringFixed(2),
			"quantity_in_stock": p.QuantityInStock,
			"location":          p.Location,
		})
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"category": fiber.Map{
			"category_name": cat.Name,
			"description":   cat.Description,
			"products":      productList,
		},
	})
}
