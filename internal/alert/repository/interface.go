package repository

import (
	"context"
	"errors"

	"alerts-srv/internal/model"
	"alerts-srv/pkg/paginator"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("record not found")

// Repository is the persisted alert collection. It exposes two distinct
// mutation paths: the full per-record Create/Update path, and the narrow
// bulk status flips which bypass validation and event emission entirely.
// They must never be merged.
//
//go:generate mockery --name Repository
type Repository interface {
	Get(ctx context.Context, opts GetOptions) ([]model.Alert, paginator.Paginator, error)
	List(ctx context.Context, opts ListOptions) ([]model.Alert, error)
	Detail(ctx context.Context, id string) (model.Alert, error)
	Create(ctx context.Context, opts CreateOptions) (model.Alert, error)
	Update(ctx context.Context, opts UpdateOptions) (model.Alert, error)
	Count(ctx context.Context, f Filter) (int64, error)
	CountByType(ctx context.Context, f Filter) (map[string]int64, error)

	// Bulk status flips: a single multi-row UPDATE each, no per-record
	// validation, no derived-field recompute, no events. Return the number
	// of rows flipped.
	CloseAll(ctx context.Context, f Filter) (int64, error)
	ReopenAll(ctx context.Context, f Filter) (int64, error)
	DestroyAll(ctx context.Context, f Filter) (int64, error)
	UndestroyAll(ctx context.Context, f Filter) (int64, error)

	// InTx runs fn against a transactional view of the repository. Calling
	// InTx on a repository already inside a transaction reuses it.
	InTx(ctx context.Context, fn func(Repository) error) error
}
