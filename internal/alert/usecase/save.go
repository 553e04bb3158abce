package usecase

import (
	"context"
	"time"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/model"
	"alerts-srv/internal/project"
	"alerts-srv/internal/user"
	pkgErrors "alerts-srv/pkg/errors"
)

// pendingEvent is an event queued until the enclosing transaction commits.
type pendingEvent struct {
	topics  []string
	payload model.Alert
}

// assignResult reports which groups of fields an assignment touched, so the
// caller knows what derived state to refresh before saving.
type assignResult struct {
	changed       bool
	timingChanged bool
	emailChanged  bool
	slugChanged   bool
}

// applyEntry copies the snapshot attributes onto a. Fields absent from the
// entry are left alone.
func applyEntry(a *model.Alert, entry alert.SnapshotEntry) assignResult {
	var res assignResult

	if a.Summary != truncateSummary(entry.Summary) {
		a.SetSummary(entry.Summary)
		res.changed = true
	}
	if a.URL != entry.URL {
		a.URL = entry.URL
		res.changed = true
	}
	if a.Priority != entry.Priority {
		a.Priority = entry.Priority
		res.changed = true
		res.timingChanged = true
	}
	if entry.OpenedAt != nil && !a.OpenedAt.Equal(*entry.OpenedAt) {
		a.OpenedAt = *entry.OpenedAt
		res.changed = true
		res.timingChanged = true
	}
	if entry.CheckedOutByEmail != nil && !strPtrEqual(a.CheckedOutByEmail, entry.CheckedOutByEmail) {
		a.CheckedOutByEmail = cloneStrPtr(entry.CheckedOutByEmail)
		res.changed = true
		res.emailChanged = true
	}
	if entry.ProjectSlug != nil && !strPtrEqual(a.ProjectSlug, entry.ProjectSlug) {
		a.ProjectSlug = cloneStrPtr(entry.ProjectSlug)
		res.changed = true
		res.slugChanged = true
	}

	return res
}

func truncateSummary(s string) string {
	probe := model.Alert{}
	probe.SetSummary(s)
	return probe.Summary
}

// resolveOwner maps the transient email address onto a user ID. An unknown
// address clears the assignment rather than failing the record.
func (uc *implUsecase) resolveOwner(ctx context.Context, a *model.Alert) error {
	if a.CheckedOutByEmail == nil || *a.CheckedOutByEmail == "" {
		a.CheckedOutByID = nil
		return nil
	}

	usr, err := uc.userUC.GetByEmail(ctx, *a.CheckedOutByEmail)
	if err != nil {
		if err == user.ErrUserNotFound {
			a.CheckedOutByID = nil
			return nil
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.resolveOwner.GetByEmail: %v", err)
		return err
	}

	a.CheckedOutByID = &usr.ID
	return nil
}

// resolveProject maps the transient slug onto a project ID. An unknown slug
// clears the association.
func (uc *implUsecase) resolveProject(ctx context.Context, a *model.Alert) error {
	if a.ProjectSlug == nil {
		return nil
	}

	prj, err := uc.projectUC.GetBySlug(ctx, *a.ProjectSlug)
	if err != nil {
		if err == project.ErrProjectNotFound {
			a.ProjectID = nil
			return nil
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.resolveProject.GetBySlug: %v", err)
		return err
	}

	a.ProjectID = &prj.ID
	return nil
}

func validateAlert(a model.Alert) error {
	collector := pkgErrors.NewValidationErrorCollector()

	if a.Type == "" {
		collector.Add(pkgErrors.NewValidationError("type", "is required"))
	}
	if a.Key == "" {
		collector.Add(pkgErrors.NewValidationError("key", "is required"))
	}
	if a.Summary == "" {
		collector.Add(pkgErrors.NewValidationError("summary", "is required"))
	}
	if a.URL == "" {
		collector.Add(pkgErrors.NewValidationError("url", "is required"))
	}
	if a.OpenedAt.IsZero() {
		collector.Add(pkgErrors.NewValidationError("openedAt", "is required"))
	}
	if !a.Priority.IsValid() {
		collector.Add(pkgErrors.NewValidationError("priority", "must be high or urgent"))
	}

	if collector.HasError() {
		return collector
	}
	return nil
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sameOwner(a, b *string) bool {
	return strPtrEqual(a, b)
}

func defaultOpenedAt(entry alert.SnapshotEntry, now time.Time) time.Time {
	if entry.OpenedAt != nil {
		return *entry.OpenedAt
	}
	return now
}
