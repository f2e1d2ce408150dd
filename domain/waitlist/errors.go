package waitlist

import (
	"errors"

	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Client-facing messages. Clients only branch on the status code.
const (
	MessageJoined            = "Successfully joined waitlist"
	MessageAllFieldsRequired = "All fields are required"
	MessageInvalidEmail      = "Invalid email format"
	MessageAlreadyRegistered = "Email already registered"

	databaseErrorPrefix = "Database error: "
)

func newAlreadyRegisteredError(err error) *apperrors.AppError {
	return apperrors.NewAlreadyRegisteredError(MessageAlreadyRegistered, err)
}

// newDatastoreError keeps the datastore's own message in the client text.
func newDatastoreError(err error) *apperrors.AppError {
	return apperrors.NewDatabaseError(databaseErrorPrefix+datastoreMessage(err), err)
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}

func datastoreMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return err.Error()
}

// datastoreLogFields returns code, message and details of a datastore error as
// slog key/value pairs.
func datastoreLogFields(err error) []any {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return []any{
			"code", pgErr.Code,
			"message", pgErr.Message,
			"details", pgErr.Detail,
			"hint", pgErr.Hint,
		}
	}
	return []any{"message", rootCause(err).Error()}
}

func rootCause(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err
	}
	return err
}

func datastoreExtras(err error) map[string]interface{} {
	fields := datastoreLogFields(err)
	extras := make(map[string]interface{}, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		extras[fields[i].(string)] = fields[i+1]
	}
	return extras
}
