package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/service"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

// AccountsHandler exposes self-service account endpoints.
type AccountsHandler struct {
	registration *service.RegistrationService
	activation   *service.ActivationService
	profiles     *service.ProfileService
	credentials  *service.CredentialRotationService
	admin        *service.AccountAdminService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(
	registration *service.RegistrationService,
	activation *service.ActivationService,
	profiles *service.ProfileService,
	credentials *service.CredentialRotationService,
	admin *service.AccountAdminService,
) *AccountsHandler {
	return &AccountsHandler{
		registration: registration,
		activation:   activation,
		profiles:     profiles,
		credentials:  credentials,
		admin:        admin,
	}
}

// Register handles POST /accounts/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.AccountRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Login == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "login and password required")
	}
	if len(req.Roles) == 0 {
		return fiber.NewError(http.StatusBadRequest, "at least one role required")
	}

	account, err := h.registration.Register(c.Context(), service.RegisterInput{
		Login:     req.Login,
		UserNo:    req.UserNo,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		LangKey:   req.LangKey,
		RoleIDs:   req.Roles,
		Deleted:   req.Deleted,
	})
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			return apperrors.NewNotFound("role", map[string]any{"role": req.Roles[0]})
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewAccountResponse(account, true),
	})
}

// Activate handles GET /accounts/activate?key=...
func (h *AccountsHandler) Activate(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return fiber.NewError(http.StatusBadRequest, "activation key required")
	}

	account, err := h.activation.Activate(c.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrActivationNotFound) {
			return apperrors.NewNotFound("activation key", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAccountResponse(account, false),
	})
}

// Me handles GET /accounts/me.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	login, ok := auth.CurrentLogin(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	account, err := h.admin.GetWithAuthorities(c.Context(), login)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return apperrors.NewNotFound("account", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAccountResponse(account, false),
	})
}

// UpdateProfile handles PUT /accounts/me.
func (h *AccountsHandler) UpdateProfile(c *fiber.Ctx) error {
	login, ok := auth.CurrentLogin(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Login == "" {
		return fiber.NewError(http.StatusBadRequest, "login required")
	}

	if err := h.profiles.UpdateSelf(c.Context(), login, profileUpdateFromRequest(req)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangePassword handles POST /accounts/me/password.
func (h *AccountsHandler) ChangePassword(c *fiber.Ctx) error {
	login, ok := auth.CurrentLogin(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "password required")
	}

	if err := h.credentials.ChangeOwnPassword(c.Context(), login, req.Password); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func profileUpdateFromRequest(req dto.ProfileUpdateRequest) service.ProfileUpdate {
	return service.ProfileUpdate{
		Login:       req.Login,
		Phone:       req.Phone,
		Gender:      req.Gender,
		Age:         req.Age,
		Classes:     req.Classes,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
	}
}
