package usecase

import (
	"time"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/alert/repository"
	"alerts-srv/internal/project"
	"alerts-srv/internal/user"
	pkgLog "alerts-srv/pkg/log"
)

type implUsecase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	userUC    user.UseCase
	projectUC project.UseCase
	publisher alert.Publisher
	clock     func() time.Time
}

func New(l pkgLog.Logger, repo repository.Repository, userUC user.UseCase, projectUC project.UseCase, publisher alert.Publisher) alert.UseCase {
	return &implUsecase{
		l:         l,
		repo:      repo,
		userUC:    userUC,
		projectUC: projectUC,
		publisher: publisher,
		clock:     time.Now,
	}
}
