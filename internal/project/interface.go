package project

import (
	"context"
	"errors"

	"alerts-srv/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

// UseCase resolves projects for alert linkage.
//
//go:generate mockery --name UseCase
type UseCase interface {
	GetBySlug(ctx context.Context, slug string) (model.Project, error)
	List(ctx context.Context, ids []string) ([]model.Project, error)
}
