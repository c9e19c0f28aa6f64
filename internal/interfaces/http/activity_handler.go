package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/dto"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/usecase"
)

// ActivityHandler expone el registro de actividad.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Recientes lista las últimas entradas de actividad.
func (h *ActivityHandler) Recientes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	list, err := h.uc.Recientes(limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ActividadResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ActividadResponse{
			Mensaje:   a.Mensaje,
			CreatedAt: a.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "actividad": out})
}
