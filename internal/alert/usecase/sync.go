package usecase

import (
	"context"
	"errors"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/alert/repository"
	"alerts-srv/internal/model"
	pkgErrors "alerts-srv/pkg/errors"
)

// Synchronize reconciles the persisted alerts of alertType with the reported
// snapshot. The whole run executes in one transaction; lifecycle events are
// queued during the run and published only after the commit.
func (uc *implUsecase) Synchronize(ctx context.Context, mode alert.SyncMode, alertType string, entries []alert.SnapshotEntry) (alert.SyncReport, error) {
	if !mode.IsValid() {
		uc.l.Warnf(ctx, "internal.alert.usecase.Synchronize: %v: %q", alert.ErrUnknownSyncMode, mode)
		return alert.SyncReport{}, alert.ErrUnknownSyncMode
	}
	if alertType == "" {
		return alert.SyncReport{}, alert.ErrTypeRequired
	}

	deduped := dedupeEntries(entries)
	report := alert.SyncReport{
		Type:     alertType,
		Mode:     mode,
		Received: len(entries),
		Deduped:  len(deduped),
	}

	var pending []pendingEvent
	err := uc.repo.InTx(ctx, func(txRepo repository.Repository) error {
		return uc.reconcile(ctx, txRepo, mode, alertType, deduped, &report, &pending)
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Synchronize.InTx: %v", err)
		return alert.SyncReport{}, err
	}

	for _, ev := range pending {
		for _, topic := range ev.topics {
			uc.publisher.Publish(ctx, topic, ev.payload)
		}
	}

	uc.l.Infof(ctx, "alerts.synchronize[%s]: %d %s alerts: closed=%d reopened=%d destroyed=%d resurrected=%d created=%d updated=%d unchanged=%d failed=%d",
		mode, len(deduped), alertType,
		report.Closed, report.Reopened, report.Destroyed, report.Resurrected,
		report.Created, report.Updated, report.Unchanged, len(report.Failures))

	return report, nil
}

func (uc *implUsecase) reconcile(
	ctx context.Context,
	repo repository.Repository,
	mode alert.SyncMode,
	alertType string,
	entries []alert.SnapshotEntry,
	report *alert.SyncReport,
	pending *[]pendingEvent,
) error {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}

	// Status flips come first, as bulk multi-row updates. An empty snapshot
	// legitimately flips the entire per-type population one way; the reverse
	// flip is skipped when there are no keys to match.
	switch mode {
	case alert.SyncModeOpen:
		closed, err := repo.CloseAll(ctx, repository.Filter{Type: alertType, Open: true, WithoutKeys: keys})
		if err != nil {
			return err
		}
		report.Closed = closed

		if len(keys) > 0 {
			reopened, err := repo.ReopenAll(ctx, repository.Filter{Type: alertType, Closed: true, Keys: keys})
			if err != nil {
				return err
			}
			report.Reopened = reopened
		}
	case alert.SyncModeAll:
		destroyed, err := repo.DestroyAll(ctx, repository.Filter{Type: alertType, WithoutKeys: keys})
		if err != nil {
			return err
		}
		report.Destroyed = destroyed

		if len(keys) > 0 {
			resurrected, err := repo.UndestroyAll(ctx, repository.Filter{Type: alertType, Destroyed: true, Keys: keys})
			if err != nil {
				return err
			}
			report.Resurrected = resurrected
		}
	}

	// Reload only after the flips, so records the flips just brought back
	// are matched instead of recreated.
	var existing []model.Alert
	if len(keys) > 0 {
		f := repository.Filter{Type: alertType, Keys: keys}
		if mode == alert.SyncModeOpen {
			f.Open = true
		}
		var err error
		existing, err = repo.List(ctx, repository.ListOptions{Filter: f})
		if err != nil {
			return err
		}
	}

	// Older data can hold several records per key; the first loaded one wins,
	// mirroring the dedupe rule applied to entries.
	matched := make([]model.Alert, 0, len(existing))
	byKey := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		if _, ok := byKey[a.Key]; ok {
			continue
		}
		byKey[a.Key] = struct{}{}
		matched = append(matched, a)
	}

	entryByKey := make(map[string]alert.SnapshotEntry, len(entries))
	for _, e := range entries {
		entryByKey[e.Key] = e
	}

	for _, e := range entries {
		if _, ok := byKey[e.Key]; ok {
			continue
		}

		created, err := uc.createFromEntry(ctx, repo, alertType, e)
		if err != nil {
			if !isValidationError(err) {
				return err
			}
			uc.recordFailure(ctx, report, e.Key, err)
			continue
		}

		report.Created++
		*pending = append(*pending, pendingEvent{topics: alert.CreateTopics(alertType), payload: created})
	}

	for _, current := range matched {
		e, ok := entryByKey[current.Key]
		if !ok {
			continue
		}

		a := current
		res := applyEntry(&a, e)
		if !res.changed {
			report.Unchanged++
			continue
		}

		if res.emailChanged {
			if err := uc.resolveOwner(ctx, &a); err != nil {
				return err
			}
		}
		if res.slugChanged {
			if err := uc.resolveProject(ctx, &a); err != nil {
				return err
			}
		}
		if res.timingChanged || a.Deadline.IsZero() {
			a.Deadline = alert.ComputeDeadline(a.OpenedAt, a.Priority)
		}

		if err := validateAlert(a); err != nil {
			uc.recordFailure(ctx, report, a.Key, err)
			continue
		}

		saved, err := repo.Update(ctx, repository.UpdateOptions{Alert: a})
		if err != nil {
			return err
		}
		report.Updated++

		if !sameOwner(ownerID(current), ownerID(saved)) {
			*pending = append(*pending, pendingEvent{topics: alert.AssignTopics(alertType), payload: saved})
		}
	}

	return nil
}

// createFromEntry builds, validates and persists a new alert from a snapshot
// entry. Validation errors are returned as-is so the caller can record them
// without aborting the run.
func (uc *implUsecase) createFromEntry(ctx context.Context, repo repository.Repository, alertType string, e alert.SnapshotEntry) (model.Alert, error) {
	a := model.Alert{
		Type:              alertType,
		Key:               e.Key,
		URL:               e.URL,
		Priority:          e.Priority,
		OpenedAt:          defaultOpenedAt(e, uc.clock()),
		CheckedOutByEmail: cloneStrPtr(e.CheckedOutByEmail),
		ProjectSlug:       cloneStrPtr(e.ProjectSlug),
	}
	a.SetSummary(e.Summary)

	if err := validateAlert(a); err != nil {
		return model.Alert{}, err
	}

	if err := uc.resolveOwner(ctx, &a); err != nil {
		return model.Alert{}, err
	}
	if err := uc.resolveProject(ctx, &a); err != nil {
		return model.Alert{}, err
	}
	a.Deadline = alert.ComputeDeadline(a.OpenedAt, a.Priority)

	created, err := repo.Create(ctx, repository.CreateOptions{Alert: a})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.createFromEntry.Create: %v", err)
		return model.Alert{}, err
	}

	return created, nil
}

func (uc *implUsecase) recordFailure(ctx context.Context, report *alert.SyncReport, key string, err error) {
	uc.l.Warnf(ctx, "alerts.synchronize: skipping %q: %v", key, err)
	report.Failures = append(report.Failures, alert.SyncFailure{Key: key, Reason: err.Error()})
}

// dedupeEntries keeps the first occurrence of each key.
func dedupeEntries(entries []alert.SnapshotEntry) []alert.SnapshotEntry {
	seen := make(map[string]struct{}, len(entries))
	res := make([]alert.SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		res = append(res, e)
	}
	return res
}

func isValidationError(err error) bool {
	var collector *pkgErrors.ValidationErrorCollector
	return errors.As(err, &collector)
}

func ownerID(a model.Alert) *string {
	return a.CheckedOutByID
}
