package repository

import (
	"context"
	"errors"

	"alerts-srv/internal/model"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, ids []string) ([]model.User, error)
}
