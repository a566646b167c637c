package dto

import (
	"time"

	"github.com/spec-kit/account-service/internal/domain"
)

// AccountRegisterRequest payload for new accounts.
type AccountRegisterRequest struct {
	Login     string   `json:"login"`
	UserNo    string   `json:"user_no"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	LangKey   string   `json:"lang_key"`
	Roles     []string `json:"roles"`
	Deleted   bool     `json:"deleted"`
}

// ProfileUpdateRequest payload for profile edits (self and admin paths).
type ProfileUpdateRequest struct {
	Login       string `json:"login"`
	Phone       string `json:"phone"`
	Gender      int    `json:"gender"`
	Age         int    `json:"age"`
	Classes     string `json:"classes"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
}

// PasswordChangeRequest payload for credential rotation.
type PasswordChangeRequest struct {
	Password string `json:"password"`
}

// AccountResponse is the external account representation. The password hash
// is never exposed; the activation key appears only on the registration
// response so the delivery collaborator can forward it.
type AccountResponse struct {
	ID            int64     `json:"id"`
	Login         string    `json:"login"`
	UserNo        string    `json:"user_no"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	LangKey       string    `json:"lang_key"`
	Phone         string    `json:"phone,omitempty"`
	Gender        int       `json:"gender,omitempty"`
	Age           int       `json:"age,omitempty"`
	Classes       string    `json:"classes,omitempty"`
	Description   string    `json:"description,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Activated     bool      `json:"activated"`
	ActivationKey string    `json:"activation_key,omitempty"`
	CreatedDate   time.Time `json:"created_date"`
	Authorities   []string  `json:"authorities"`
}

// NewAccountResponse maps the domain model, optionally exposing the key.
func NewAccountResponse(account *domain.Account, includeKey bool) AccountResponse {
	resp := AccountResponse{
		ID:          account.ID,
		Login:       account.Login,
		UserNo:      account.UserNo,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Email:       account.Email,
		LangKey:     account.LangKey,
		Phone:       account.Phone,
		Gender:      account.Gender,
		Age:         account.Age,
		Classes:     account.Classes,
		Description: account.Description,
		AvatarURL:   account.AvatarURL,
		Activated:   account.Activated,
		CreatedDate: account.CreatedDate,
		Authorities: make([]string, 0, len(account.Authorities)),
	}
	for _, authority := range account.Authorities {
		resp.Authorities = append(resp.Authorities, authority.Name)
	}
	if includeKey && account.ActivationKey != nil {
		resp.ActivationKey = *account.ActivationKey
	}
	return resp
}
