package handlers

import (
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the read-only product/category surface the
// storefront needs; catalog management is out of scope.
type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "catalog.categories.fail", err)
	}
	return c.JSON(cats)
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	q := c.Query("search")
	category := c.Query("category")
	page := c.QueryInt("page", 1)
	products, err := h.Catalog.ListProducts(q, category, page, 12)
	if err != nil {
		return fail(c, "catalog.products.fail", err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "catalog.product.fail", err)
	}
	return c.JSON(p)
}
