package service

import (
	"context"
	"errors"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/repository"
)

// Admin implements administrative user actions.
type Admin struct {
	users UserStore
}

func NewAdmin(users UserStore) *Admin { return &Admin{users: users} }

// SetBlocked blocks or unblocks a user. Admins cannot block themselves;
// the guard runs before any persistence is touched.
func (s *Admin) SetBlocked(ctx context.Context, actorID, targetID uint64, blocked bool) error {
	if blocked && actorID == targetID {
		return apperr.Validation("you cannot block yourself")
	}
	if _, err := s.users.GetByID(ctx, targetID, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}
	if err := s.users.SetBlocked(ctx, targetID, blocked); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
