package usecase

import (
	"context"
	"time"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/alert/repository"
	"alerts-srv/internal/model"
)

func (uc *implUsecase) Get(ctx context.Context, ip alert.GetInput) (alert.GetOutput, error) {
	alerts, pag, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter:        toRepoFilter(ip.Filter),
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Get.repo.Get: %v", err)
		return alert.GetOutput{}, err
	}

	alerts, err = uc.hydrate(ctx, alerts)
	if err != nil {
		return alert.GetOutput{}, err
	}

	return alert.GetOutput{Alerts: alerts, Paginator: pag}, nil
}

func (uc *implUsecase) Detail(ctx context.Context, id string) (model.Alert, error) {
	a, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Alert{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.Detail.repo.Detail: %v", err)
		return model.Alert{}, err
	}

	alerts, err := uc.hydrate(ctx, []model.Alert{a})
	if err != nil {
		return model.Alert{}, err
	}

	return alerts[0], nil
}

// Create handles the administrative create path. Unlike the reconciliation
// engine it publishes its events immediately.
func (uc *implUsecase) Create(ctx context.Context, ip alert.CreateInput) (model.Alert, error) {
	if ip.Type == "" {
		return model.Alert{}, alert.ErrTypeRequired
	}

	entry := alert.SnapshotEntry{
		Key:               ip.Key,
		Summary:           ip.Summary,
		URL:               ip.URL,
		Priority:          ip.Priority,
		OpenedAt:          ip.OpenedAt,
		CheckedOutByEmail: ip.CheckedOutByEmail,
		ProjectSlug:       ip.ProjectSlug,
	}

	created, err := uc.createFromEntry(ctx, uc.repo, ip.Type, entry)
	if err != nil {
		return model.Alert{}, err
	}

	for _, topic := range alert.CreateTopics(created.Type) {
		uc.publisher.Publish(ctx, topic, created)
	}

	return created, nil
}

// Update handles a manual edit; only the supplied fields are applied.
func (uc *implUsecase) Update(ctx context.Context, ip alert.UpdateInput) (model.Alert, error) {
	current, err := uc.repo.Detail(ctx, ip.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Alert{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.Update.repo.Detail: %v", err)
		return model.Alert{}, err
	}

	a := current
	var changed, timingChanged, emailChanged, slugChanged bool

	if ip.Summary != nil && a.Summary != truncateSummary(*ip.Summary) {
		a.SetSummary(*ip.Summary)
		changed = true
	}
	if ip.URL != nil && a.URL != *ip.URL {
		a.URL = *ip.URL
		changed = true
	}
	if ip.Priority != nil && a.Priority != *ip.Priority {
		a.Priority = *ip.Priority
		changed = true
		timingChanged = true
	}
	if ip.OpenedAt != nil && !a.OpenedAt.Equal(*ip.OpenedAt) {
		a.OpenedAt = *ip.OpenedAt
		changed = true
		timingChanged = true
	}
	if ip.CheckedOutByEmail != nil && !strPtrEqual(a.CheckedOutByEmail, ip.CheckedOutByEmail) {
		a.CheckedOutByEmail = cloneStrPtr(ip.CheckedOutByEmail)
		changed = true
		emailChanged = true
	}
	if ip.ProjectSlug != nil && !strPtrEqual(a.ProjectSlug, ip.ProjectSlug) {
		a.ProjectSlug = cloneStrPtr(ip.ProjectSlug)
		changed = true
		slugChanged = true
	}

	if !changed {
		return uc.hydrateOne(ctx, current)
	}

	if emailChanged {
		if err := uc.resolveOwner(ctx, &a); err != nil {
			return model.Alert{}, err
		}
	}
	if slugChanged {
		if err := uc.resolveProject(ctx, &a); err != nil {
			return model.Alert{}, err
		}
	}
	if timingChanged {
		a.Deadline = alert.ComputeDeadline(a.OpenedAt, a.Priority)
	}

	if err := validateAlert(a); err != nil {
		return model.Alert{}, err
	}

	saved, err := uc.repo.Update(ctx, repository.UpdateOptions{Alert: a})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Update.repo.Update: %v", err)
		return model.Alert{}, err
	}

	if !sameOwner(current.CheckedOutByID, saved.CheckedOutByID) {
		for _, topic := range alert.AssignTopics(saved.Type) {
			uc.publisher.Publish(ctx, topic, saved)
		}
	}

	return uc.hydrateOne(ctx, saved)
}

func (uc *implUsecase) Dashboard(ctx context.Context) (alert.DashboardOutput, error) {
	now := uc.clock()

	open, err := uc.repo.Count(ctx, repository.Filter{Open: true})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Dashboard.Count: %v", err)
		return alert.DashboardOutput{}, err
	}

	overdue, err := uc.repo.Count(ctx, repository.Filter{Open: true, DueBefore: &now})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Dashboard.Count: %v", err)
		return alert.DashboardOutput{}, err
	}

	closedOn := startOfDay(now)
	closed, err := uc.repo.Count(ctx, repository.Filter{ClosedOn: &closedOn})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Dashboard.Count: %v", err)
		return alert.DashboardOutput{}, err
	}

	byType, err := uc.repo.CountByType(ctx, repository.Filter{Open: true})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Dashboard.CountByType: %v", err)
		return alert.DashboardOutput{}, err
	}

	return alert.DashboardOutput{
		Open:    open,
		Overdue: overdue,
		Closed:  closed,
		ByType:  byType,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// hydrate attaches the owner and project records to the given alerts with two
// batched lookups.
func (uc *implUsecase) hydrate(ctx context.Context, alerts []model.Alert) ([]model.Alert, error) {
	userIDs := make([]string, 0, len(alerts))
	projectIDs := make([]string, 0, len(alerts))
	seenUsers := make(map[string]struct{})
	seenProjects := make(map[string]struct{})
	for _, a := range alerts {
		if a.CheckedOutByID != nil {
			if _, ok := seenUsers[*a.CheckedOutByID]; !ok {
				seenUsers[*a.CheckedOutByID] = struct{}{}
				userIDs = append(userIDs, *a.CheckedOutByID)
			}
		}
		if a.ProjectID != nil {
			if _, ok := seenProjects[*a.ProjectID]; !ok {
				seenProjects[*a.ProjectID] = struct{}{}
				projectIDs = append(projectIDs, *a.ProjectID)
			}
		}
	}

	userByID := make(map[string]model.User, len(userIDs))
	if len(userIDs) > 0 {
		users, err := uc.userUC.List(ctx, userIDs)
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.hydrate.userUC.List: %v", err)
			return nil, err
		}
		for _, u := range users {
			userByID[u.ID] = u
		}
	}

	projectByID := make(map[string]model.Project, len(projectIDs))
	if len(projectIDs) > 0 {
		projects, err := uc.projectUC.List(ctx, projectIDs)
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.hydrate.projectUC.List: %v", err)
			return nil, err
		}
		for _, p := range projects {
			projectByID[p.ID] = p
		}
	}

	for i := range alerts {
		if id := alerts[i].CheckedOutByID; id != nil {
			if u, ok := userByID[*id]; ok {
				usr := u
				alerts[i].CheckedOutBy = &usr
			}
		}
		if id := alerts[i].ProjectID; id != nil {
			if p, ok := projectByID[*id]; ok {
				prj := p
				alerts[i].Project = &prj
			}
		}
	}

	return alerts, nil
}

func (uc *implUsecase) hydrateOne(ctx context.Context, a model.Alert) (model.Alert, error) {
	alerts, err := uc.hydrate(ctx, []model.Alert{a})
	if err != nil {
		return model.Alert{}, err
	}
	return alerts[0], nil
}

func toRepoFilter(f alert.Filter) repository.Filter {
	return repository.Filter{
		Type:           f.Type,
		Open:           f.Open,
		Closed:         f.Closed,
		Destroyed:      f.Destroyed,
		CheckedOutByID: f.CheckedOutByID,
		DueBefore:      f.DueBefore,
		ClosedOn:       f.ClosedOn,
		ClosedAfter:    f.ClosedAfter,
	}
}
