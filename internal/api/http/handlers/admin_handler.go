package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/service"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

// AdminHandler exposes administrator account endpoints.
type AdminHandler struct {
	profiles *service.ProfileService
	admin    *service.AccountAdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(profiles *service.ProfileService, admin *service.AccountAdminService) *AdminHandler {
	return &AdminHandler{profiles: profiles, admin: admin}
}

// UpdateAccount handles PUT /admin/accounts/:login.
func (h *AdminHandler) UpdateAccount(c *fiber.Ctx) error {
	targetLogin := c.Params("login")
	if targetLogin == "" {
		return fiber.NewError(http.StatusBadRequest, "target login required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Login == "" {
		return fiber.NewError(http.StatusBadRequest, "login required")
	}

	if err := h.profiles.UpdateOther(c.Context(), targetLogin, profileUpdateFromRequest(req)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// SoftDelete handles DELETE /admin/accounts/:id.
func (h *AdminHandler) SoftDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	if err := h.admin.SoftDelete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return apperrors.NewNotFound("account", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
