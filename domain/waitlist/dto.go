package waitlist

import (
	"time"

	"github.com/akeren/daredash-waitlist/internal/models"
	"github.com/akeren/daredash-waitlist/pkg/constants"
)

// CreateWaitlistEntryRequest is the submission payload. The form tags serve the
// no-script form post on the landing page.
type CreateWaitlistEntryRequest struct {
	FirstName      string `json:"firstName" form:"firstName" validate:"required"`
	LastName       string `json:"lastName" form:"lastName" validate:"required"`
	Email          string `json:"email" form:"email" validate:"required,waitlist_email"`
	ReferralSource string `json:"referralSource" form:"referralSource" validate:"required"`
}

type WaitlistEntryResponse struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	ReferralSource string `json:"referralSource"`
	CreatedAt      string `json:"createdAt"`
}

// ReferralCount is the number of entries that named one referral source.
type ReferralCount struct {
	ReferralSource string `json:"referralSource"`
	Count          int64  `json:"count"`
}

// Values are stored exactly as submitted.
func ToWaitlistEntryModel(req *CreateWaitlistEntryRequest, createdAt time.Time) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		ReferralSource: req.ReferralSource,
		CreatedAt:      createdAt,
	}
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		FirstName:      entry.FirstName,
		LastName:       entry.LastName,
		Email:          entry.Email,
		ReferralSource: entry.ReferralSource,
		CreatedAt:      entry.CreatedAt.UTC().Format(constants.RFC3339DateTimeFormat),
	}
}
