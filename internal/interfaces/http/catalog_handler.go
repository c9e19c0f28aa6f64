package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/usecase"
)

// CatalogHandler maneja la lectura de los catálogos de productos y depósitos.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Productos lista el catálogo de productos.
func (h *CatalogHandler) Productos(c *fiber.Ctx) error {
	list, err := h.uc.Productos()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "productos": list})
}

// Depositos lista el catálogo de depósitos.
func (h *CatalogHandler) Depositos(c *fiber.Ctx) error {
	list, err := h.uc.Depositos()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "depositos": list})
}
