package waitlist

import (
	"context"
	"time"

	"github.com/akeren/daredash-waitlist/internal/log"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/akeren/daredash-waitlist/pkg/reporting"
	"github.com/go-playground/validator/v10"
)

// DuplicateCheck selects how a repeated email is detected.
type DuplicateCheck string

const (
	// DuplicateCheckConstraint relies on the unique index alone: one insert, atomic.
	DuplicateCheckConstraint DuplicateCheck = "constraint"
	// DuplicateCheckLookup queries for the email before inserting.
	DuplicateCheckLookup DuplicateCheck = "lookup"
)

type WaitlistService interface {
	// CreateEntry validates the request and stores it as a new entry.
	CreateEntry(ctx context.Context, req *CreateWaitlistEntryRequest) error

	// ListEntries returns all entries, oldest first.
	ListEntries(ctx context.Context) ([]WaitlistEntryResponse, error)

	// CountByReferralSource returns entry counts per referral source, largest first.
	CountByReferralSource(ctx context.Context) ([]ReferralCount, error)
}

type ServiceConfig struct {
	DuplicateCheck DuplicateCheck
	Now            func() time.Time
	Metrics        *SubmissionMetrics
}

type waitlistService struct {
	logger         *log.Logger
	repository     WaitlistRepository
	validate       *validator.Validate
	duplicateCheck DuplicateCheck
	now            func() time.Time
	metrics        *SubmissionMetrics
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, cfg ServiceConfig) WaitlistService {
	if cfg.DuplicateCheck == "" {
		cfg.DuplicateCheck = DuplicateCheckConstraint
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &waitlistService{
		logger:         logger,
		repository:     repository,
		validate:       newValidator(),
		duplicateCheck: cfg.DuplicateCheck,
		now:            cfg.Now,
		metrics:        cfg.Metrics,
	}
}

func (s *waitlistService) CreateEntry(ctx context.Context, req *CreateWaitlistEntryRequest) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		req = &CreateWaitlistEntryRequest{}
	}

	if err := validateRequest(s.validate, req); err != nil {
		if apperrors.IsServerError(err) {
			return s.fail(ctx, logger, "Failed to validate waitlist submission", err)
		}
		s.metrics.observe(outcomeInvalid)
		logger.Info("Waitlist submission rejected",
			"reason", apperrors.GetHumanReadableMessage(err),
			"fields", apperrors.GetDetails(err),
		)
		return err
	}

	if s.duplicateCheck == DuplicateCheckLookup {
		exists, err := s.repository.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return s.fail(ctx, logger, "Failed to look up waitlist email", err)
		}
		if exists {
			return s.duplicate(logger, newAlreadyRegisteredError(nil))
		}
	}

	entry := ToWaitlistEntryModel(req, s.now().UTC())

	if err := s.repository.CreateEntry(ctx, entry); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeAlreadyRegistered) {
			return s.duplicate(logger, err)
		}
		return s.fail(ctx, logger, "Failed to create waitlist entry", err)
	}

	s.metrics.observe(outcomeJoined)
	logger.Info("Waitlist entry created", "referral_source", entry.ReferralSource)

	return nil
}

func (s *waitlistService) ListEntries(ctx context.Context) ([]WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.ListEntries(ctx)
	if err != nil {
		logger.Error("Failed to list waitlist entries", "error", err)
		return nil, err
	}

	responses := make([]WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToWaitlistEntryResponse(entry))
	}

	return responses, nil
}

func (s *waitlistService) CountByReferralSource(ctx context.Context) ([]ReferralCount, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	counts, err := s.repository.CountByReferralSource(ctx)
	if err != nil {
		logger.Error("Failed to count waitlist entries by referral source", "error", err)
		return nil, err
	}

	return counts, nil
}

func (s *waitlistService) duplicate(logger *log.Logger, err error) error {
	s.metrics.observe(outcomeDuplicate)
	logger.Info("Waitlist submission rejected", "reason", MessageAlreadyRegistered)
	return err
}

// fail logs and reports a server-side failure. Errors that are not already
// AppErrors are treated as datastore errors.
func (s *waitlistService) fail(ctx context.Context, logger *log.Logger, msg string, err error) error {
	s.metrics.observe(outcomeError)

	logger.Error(msg, append([]any{"error", err}, datastoreLogFields(err)...)...)
	reporting.CaptureError(ctx, err, datastoreExtras(err))

	if apperrors.GetErrorType(err) == apperrors.ErrorTypeUnknown {
		return newDatastoreError(err)
	}
	return err
}
