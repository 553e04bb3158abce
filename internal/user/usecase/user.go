package usecase

import (
	"context"

	"alerts-srv/internal/model"
	"alerts-srv/internal/user"
	"alerts-srv/internal/user/repository"
	pkgLog "alerts-srv/pkg/log"
)

type implUsecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

func New(l pkgLog.Logger, repo repository.Repository) user.UseCase {
	return &implUsecase{
		l:    l,
		repo: repo,
	}
}

func (uc *implUsecase) GetByEmail(ctx context.Context, email string) (model.User, error) {
	usr, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.User{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.GetByEmail: %v", err)
		return model.User{}, err
	}

	return usr, nil
}

func (uc *implUsecase) List(ctx context.Context, ids []string) ([]model.User, error) {
	usrs, err := uc.repo.List(ctx, ids)
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.List: %v", err)
		return nil, err
	}

	return usrs, nil
}
