package identifier

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"gorm.io/gorm"

	"lab_manager/internal/models"
)

// ErrInvalidRole is returned for roles whose identifiers are not
// generated here (admin numbers are provisioned at seed time).
var ErrInvalidRole = errors.New("no identifier prefix for role")

var prefixes = map[string]string{
	"patient":   "PAT",
	"personnel": "PER",
}

// One mutex per generated role. Next's read-max-then-increment is not
// atomic on its own, so the lock must be held until the transaction
// consuming the number has committed. Acquire hands that lock out.
var roleLocks = map[string]*sync.Mutex{
	"patient":   {},
	"personnel": {},
}

// Acquire locks the per-role sequence and returns the release func.
// Callers hold it across Next and the insert that uses the result.
func Acquire(role string) (func(), error) {
	mu, ok := roleLocks[role]
	if !ok {
		return nil, ErrInvalidRole
	}
	mu.Lock()
	return mu.Unlock, nil
}

// Next returns the next user number for the role, e.g. "PAT000042".
// The scan includes soft-deleted users so numbers are never reissued.
func Next(db *gorm.DB, role string) (string, error) {
	prefix, ok := prefixes[role]
	if !ok {
		return "", ErrInvalidRole
	}

	var last models.User
	err := db.Unscoped().
		Where("user_number LIKE ?", prefix+"%").
		Order("user_number DESC").
		First(&last).Error

	next := 1
	switch {
	case err == nil:
		n, convErr := strconv.Atoi(last.UserNumber[len(prefix):])
		if convErr != nil {
			return "", fmt.Errorf("malformed user number %q: %w", last.UserNumber, convErr)
		}
		next = n + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first user of this role
	default:
		return "", err
	}

	return fmt.Sprintf("%s%06d", prefix, next), nil
}
