package waitlist

import (
	"context"

	"github.com/akeren/daredash-waitlist/internal/models"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

type WaitlistRepository interface {
	// CreateEntry inserts a new entry. A second entry with the same email is
	// rejected by the idx_waitlist_email unique index.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) error
	// ExistsByEmail reports whether an entry with exactly this email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListEntries returns every entry, oldest first.
	ListEntries(ctx context.Context) ([]*models.WaitlistEntry, error)
	// CountByReferralSource returns entry counts grouped by referral source.
	CountByReferralSource(ctx context.Context) ([]ReferralCount, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry == nil {
		return apperrors.NewInvalidRequestError("entry cannot be nil", nil)
	}

	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return newAlreadyRegisteredError(err)
		}
		return newDatastoreError(err)
	}

	return nil
}

func (wr *waitlistRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, newDatastoreError(err)
	}

	return count > 0, nil
}

func (wr *waitlistRepository) ListEntries(ctx context.Context) ([]*models.WaitlistEntry, error) {
	var entries []*models.WaitlistEntry

	if err := wr.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, newDatastoreError(err)
	}

	return entries, nil
}

func (wr *waitlistRepository) CountByReferralSource(ctx context.Context) ([]ReferralCount, error) {
	var counts []ReferralCount

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Select("referral_source, COUNT(*) AS count").
		Group("referral_source").
		Order("count DESC, referral_source ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, newDatastoreError(err)
	}

	return counts, nil
}
