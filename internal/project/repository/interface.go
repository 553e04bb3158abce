package repository

import (
	"context"
	"errors"

	"alerts-srv/internal/model"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (model.Project, error)
	List(ctx context.Context, ids []string) ([]model.Project, error)
}
