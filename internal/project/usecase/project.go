package usecase

import (
	"context"

	"alerts-srv/internal/model"
	"alerts-srv/internal/project"
	"alerts-srv/internal/project/repository"
	pkgLog "alerts-srv/pkg/log"
)

type implUsecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

func New(l pkgLog.Logger, repo repository.Repository) project.UseCase {
	return &implUsecase{
		l:    l,
		repo: repo,
	}
}

func (uc *implUsecase) GetBySlug(ctx context.Context, slug string) (model.Project, error) {
	proj, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Project{}, project.ErrProjectNotFound
		}
		uc.l.Errorf(ctx, "internal.project.usecase.GetBySlug: %v", err)
		return model.Project{}, err
	}

	return proj, nil
}

func (uc *implUsecase) List(ctx context.Context, ids []string) ([]model.Project, error) {
	projs, err := uc.repo.List(ctx, ids)
	if err != nil {
		uc.l.Errorf(ctx, "internal.project.usecase.List: %v", err)
		return nil, err
	}

	return projs, nil
}
