package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered  EventType = "account_registered"
	EventAccountActivated   EventType = "account_activated"
	EventAccountRemoved     EventType = "account_removed"
	EventAccountSoftDeleted EventType = "account_soft_deleted"
	EventPasswordChanged    EventType = "password_changed"
	EventProfileUpdated     EventType = "profile_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID int64       `json:"account_id"`
	Login     string      `json:"login"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	UserNo      string   `json:"user_no"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
}

// AccountRemovedPayload payload.
type AccountRemovedPayload struct {
	CreatedDate time.Time `json:"created_date"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	PreviousLogin string `json:"previous_login"`
	ByAdmin       bool   `json:"by_admin"`
}
