package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a platform user record. It exists so the gateway's auth edge
// can mint user-context tokens; identity verification itself happens
// elsewhere and only its outcome (KYCStatus) is stored here.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	KYCStatus    KYCStatus `json:"kyc_status"`
	Region       string    `json:"region"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AgeAt returns the account holder's age in whole years at the given time.
func (a *Account) AgeAt(now time.Time) int {
	years := now.Year() - a.DateOfBirth.Year()
	anniversary := a.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Context builds the UserContext the compliance validator consumes.
func (a *Account) Context(now time.Time) UserContext {
	return UserContext{
		UserID:    a.ID,
		Age:       a.AgeAt(now),
		KYCStatus: a.KYCStatus,
		Region:    a.Region,
	}
}
