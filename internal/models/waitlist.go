package models

import "time"

// WaitlistEntry is one signup. Rows are only ever inserted by the service.
type WaitlistEntry struct {
	ID             uint      `gorm:"primaryKey"`
	FirstName      string    `gorm:"not null"`
	LastName       string    `gorm:"not null"`
	Email          string    `gorm:"not null;uniqueIndex:idx_waitlist_email"`
	ReferralSource string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}

// ModelRegistry lists the models handled by --auto-migrate.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
}
