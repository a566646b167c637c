package domain

import "time"

// Account is the domain model for a registered user account.
type Account struct {
	ID            int64
	Login         string
	UserNo        string
	PasswordHash  string
	FirstName     string
	LastName      string
	Email         string
	LangKey       string
	Phone         string
	Gender        int
	Age           int
	Classes       string
	Description   string
	AvatarURL     string
	Activated     bool
	ActivationKey *string
	CreatedDate   time.Time
	Deleted       bool
	Authorities   []Authority
}

// Pending reports whether the account is still waiting for activation.
func (a *Account) Pending() bool {
	return !a.Activated && a.ActivationKey != nil
}

// HasAuthority reports whether the account holds the named role grant.
func (a *Account) HasAuthority(name string) bool {
	for _, auth := range a.Authorities {
		if auth.Name == name {
			return true
		}
	}
	return false
}
