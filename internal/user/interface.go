package user

import (
	"context"
	"errors"

	"alerts-srv/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// UseCase resolves users for alert ownership. This service never creates
// users; they are managed elsewhere.
//
//go:generate mockery --name UseCase
type UseCase interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, ids []string) ([]model.User, error)
}
