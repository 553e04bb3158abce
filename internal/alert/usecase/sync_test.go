package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/alert/repository"
	"alerts-srv/internal/model"
	"alerts-srv/internal/project"
	"alerts-srv/internal/user"
	"alerts-srv/pkg/paginator"
)

// --- Test doubles ---

type testLogger struct{}

func (testLogger) Debug(context.Context, ...any)          {}
func (testLogger) Debugf(context.Context, string, ...any) {}
func (testLogger) Info(context.Context, ...any)           {}
func (testLogger) Infof(context.Context, string, ...any)  {}
func (testLogger) Warn(context.Context, ...any)           {}
func (testLogger) Warnf(context.Context, string, ...any)  {}
func (testLogger) Error(context.Context, ...any)          {}
func (testLogger) Errorf(context.Context, string, ...any) {}
func (testLogger) Fatal(context.Context, ...any)          {}
func (testLogger) Fatalf(context.Context, string, ...any) {}

type fakeRepo struct {
	alerts []model.Alert
	seq    int
	now    time.Time
}

func (r *fakeRepo) matches(f repository.Filter, a model.Alert) bool {
	if f.Destroyed != (a.DestroyedAt != nil) {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if len(f.Keys) > 0 && !containsKey(f.Keys, a.Key) {
		return false
	}
	if len(f.WithoutKeys) > 0 && containsKey(f.WithoutKeys, a.Key) {
		return false
	}
	if f.Open && a.ClosedAt != nil {
		return false
	}
	if f.Closed && a.ClosedAt == nil {
		return false
	}
	if f.CheckedOutByID != "" && (a.CheckedOutByID == nil || *a.CheckedOutByID != f.CheckedOutByID) {
		return false
	}
	if f.DueBefore != nil && a.Deadline.After(*f.DueBefore) {
		return false
	}
	if f.ClosedOn != nil {
		if a.ClosedAt == nil {
			return false
		}
		start := time.Date(f.ClosedOn.Year(), f.ClosedOn.Month(), f.ClosedOn.Day(), 0, 0, 0, 0, f.ClosedOn.Location())
		if a.ClosedAt.Before(start) || !a.ClosedAt.Before(start.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func (r *fakeRepo) Get(ctx context.Context, opts repository.GetOptions) ([]model.Alert, paginator.Paginator, error) {
	alerts, _ := r.List(ctx, repository.ListOptions{Filter: opts.Filter})
	return alerts, paginator.Paginator{Total: int64(len(alerts)), Count: int64(len(alerts))}, nil
}

func (r *fakeRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Alert, error) {
	var res []model.Alert
	for _, a := range r.alerts {
		if r.matches(opts.Filter, a) {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *fakeRepo) Detail(_ context.Context, id string) (model.Alert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Alert{}, repository.ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, opts repository.CreateOptions) (model.Alert, error) {
	a := opts.Alert
	r.seq++
	a.ID = fmt.Sprintf("id-%d", r.seq)
	a.CreatedAt = r.now
	a.UpdatedAt = r.now
	r.alerts = append(r.alerts, a)
	return a, nil
}

func (r *fakeRepo) Update(_ context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	for i, a := range r.alerts {
		if a.ID == opts.Alert.ID {
			updated := opts.Alert
			updated.UpdatedAt = r.now
			r.alerts[i] = updated
			return updated, nil
		}
	}
	return model.Alert{}, repository.ErrNotFound
}

func (r *fakeRepo) Count(ctx context.Context, f repository.Filter) (int64, error) {
	alerts, _ := r.List(ctx, repository.ListOptions{Filter: f})
	return int64(len(alerts)), nil
}

func (r *fakeRepo) CountByType(ctx context.Context, f repository.Filter) (map[string]int64, error) {
	alerts, _ := r.List(ctx, repository.ListOptions{Filter: f})
	res := make(map[string]int64)
	for _, a := range alerts {
		res[a.Type]++
	}
	return res, nil
}

func (r *fakeRepo) flip(f repository.Filter, mutate func(*model.Alert)) (int64, error) {
	var n int64
	for i := range r.alerts {
		if r.matches(f, r.alerts[i]) {
			mutate(&r.alerts[i])
			r.alerts[i].UpdatedAt = r.now
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CloseAll(_ context.Context, f repository.Filter) (int64, error) {
	now := r.now
	return r.flip(f, func(a *model.Alert) { a.ClosedAt = &now })
}

func (r *fakeRepo) ReopenAll(_ context.Context, f repository.Filter) (int64, error) {
	return r.flip(f, func(a *model.Alert) { a.ClosedAt = nil })
}

func (r *fakeRepo) DestroyAll(_ context.Context, f repository.Filter) (int64, error) {
	now := r.now
	return r.flip(f, func(a *model.Alert) { a.DestroyedAt = &now })
}

func (r *fakeRepo) UndestroyAll(_ context.Context, f repository.Filter) (int64, error) {
	return r.flip(f, func(a *model.Alert) { a.DestroyedAt = nil })
}

func (r *fakeRepo) InTx(_ context.Context, fn func(repository.Repository) error) error {
	return fn(r)
}

type recordedEvent struct {
	topic   string
	payload any
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload any) {
	p.events = append(p.events, recordedEvent{topic: topic, payload: payload})
}

func (p *recordingPublisher) topics() []string {
	var res []string
	for _, ev := range p.events {
		res = append(res, ev.topic)
	}
	return res
}

type fakeUserUC struct {
	byEmail map[string]model.User
}

func (f *fakeUserUC) GetByEmail(_ context.Context, email string) (model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return model.User{}, user.ErrUserNotFound
}

func (f *fakeUserUC) List(_ context.Context, ids []string) ([]model.User, error) {
	var res []model.User
	for _, u := range f.byEmail {
		if containsKey(ids, u.ID) {
			res = append(res, u)
		}
	}
	return res, nil
}

type fakeProjectUC struct {
	bySlug map[string]model.Project
}

func (f *fakeProjectUC) GetBySlug(_ context.Context, slug string) (model.Project, error) {
	if p, ok := f.bySlug[slug]; ok {
		return p, nil
	}
	return model.Project{}, project.ErrProjectNotFound
}

func (f *fakeProjectUC) List(_ context.Context, ids []string) ([]model.Project, error) {
	var res []model.Project
	for _, p := range f.bySlug {
		if containsKey(ids, p.ID) {
			res = append(res, p)
		}
	}
	return res, nil
}

// --- Harness ---

var testNow = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) // a Tuesday

func newTestUsecase(repo *fakeRepo) (*implUsecase, *recordingPublisher) {
	repo.now = testNow
	pub := &recordingPublisher{}
	uc := &implUsecase{
		l:    testLogger{},
		repo: repo,
		userUC: &fakeUserUC{byEmail: map[string]model.User{
			"ops@example.com": {ID: "user-1", Name: "Ops", Email: "ops@example.com"},
		}},
		projectUC: &fakeProjectUC{bySlug: map[string]model.Project{
			"payments": {ID: "project-1", Slug: "payments", Name: "Payments", Color: "teal"},
		}},
		publisher: pub,
		clock:     func() time.Time { return testNow },
	}
	return uc, pub
}

func openAlert(id, alertType, key string) model.Alert {
	a := model.Alert{
		ID:       id,
		Type:     alertType,
		Key:      key,
		Summary:  "summary of " + key,
		URL:      "https://example.com/" + key,
		Priority: model.PriorityHigh,
		OpenedAt: testNow.Add(-24 * time.Hour),
	}
	a.Deadline = a.OpenedAt.AddDate(0, 0, 2)
	return a
}

func entryFor(a model.Alert) alert.SnapshotEntry {
	return alert.SnapshotEntry{
		Key:      a.Key,
		Summary:  a.Summary,
		URL:      a.URL,
		Priority: a.Priority,
	}
}

// --- Tests ---

func TestSynchronizeRejectsBadInput(t *testing.T) {
	uc, _ := newTestUsecase(&fakeRepo{})
	ctx := context.Background()

	_, err := uc.Synchronize(ctx, "sometimes", "ci-build", nil)
	assert.ErrorIs(t, err, alert.ErrUnknownSyncMode)

	_, err = uc.Synchronize(ctx, alert.SyncModeOpen, "", nil)
	assert.ErrorIs(t, err, alert.ErrTypeRequired)
}

func TestSynchronizeOpenMode(t *testing.T) {
	ctx := context.Background()

	closedAt := testNow.Add(-2 * time.Hour)
	stale := openAlert("id-stale", "ci-build", "stale")
	kept := openAlert("id-kept", "ci-build", "kept")
	wasClosed := openAlert("id-closed", "ci-build", "was-closed")
	wasClosed.ClosedAt = &closedAt
	otherType := openAlert("id-other", "exception", "stale")

	repo := &fakeRepo{alerts: []model.Alert{stale, kept, wasClosed, otherType}, seq: 100}
	uc, pub := newTestUsecase(repo)

	entries := []alert.SnapshotEntry{
		entryFor(kept),
		entryFor(wasClosed),
		{Key: "brand-new", Summary: "new failure", URL: "https://example.com/new", Priority: model.PriorityUrgent},
	}

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", entries)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.Closed)
	assert.Equal(t, int64(1), report.Reopened)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Unchanged)
	assert.Equal(t, 0, report.Updated)
	assert.Empty(t, report.Failures)

	// The stale record is closed, not deleted, and the reopened one is back.
	staleNow, err := repo.Detail(ctx, "id-stale")
	require.NoError(t, err)
	assert.NotNil(t, staleNow.ClosedAt)
	reopened, err := repo.Detail(ctx, "id-closed")
	require.NoError(t, err)
	assert.Nil(t, reopened.ClosedAt)

	// Another type's alerts are untouched even with a colliding key.
	other, err := repo.Detail(ctx, "id-other")
	require.NoError(t, err)
	assert.Nil(t, other.ClosedAt)

	// Only the creation fired events; the bulk flips never do.
	assert.Equal(t, []string{"alert:create", "alert:ci-build:create"}, pub.topics())

	// The new record got a computed deadline.
	created := pub.events[0].payload.(model.Alert)
	assert.Equal(t, "brand-new", created.Key)
	assert.Equal(t, testNow.Add(2*time.Hour), created.Deadline)
	assert.Equal(t, testNow, created.OpenedAt)
}

func TestSynchronizeAllMode(t *testing.T) {
	ctx := context.Background()

	destroyedAt := testNow.Add(-48 * time.Hour)
	gone := openAlert("id-gone", "exception", "gone")
	kept := openAlert("id-kept", "exception", "kept")
	buried := openAlert("id-buried", "exception", "buried")
	buried.DestroyedAt = &destroyedAt

	repo := &fakeRepo{alerts: []model.Alert{gone, kept, buried}, seq: 200}
	uc, pub := newTestUsecase(repo)

	entries := []alert.SnapshotEntry{entryFor(kept), entryFor(buried)}

	report, err := uc.Synchronize(ctx, alert.SyncModeAll, "exception", entries)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.Destroyed)
	assert.Equal(t, int64(1), report.Resurrected)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 2, report.Unchanged)

	goneNow, err := repo.Detail(ctx, "id-gone")
	require.NoError(t, err)
	assert.NotNil(t, goneNow.DestroyedAt)
	back, err := repo.Detail(ctx, "id-buried")
	require.NoError(t, err)
	assert.Nil(t, back.DestroyedAt)

	assert.Empty(t, pub.events)
}

func TestSynchronizeEmptySnapshotClosesEverything(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepo{alerts: []model.Alert{
		openAlert("id-1", "ci-build", "one"),
		openAlert("id-2", "ci-build", "two"),
	}}
	uc, pub := newTestUsecase(repo)

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Closed)
	assert.Equal(t, int64(0), report.Reopened)
	assert.Equal(t, 0, report.Created)
	assert.Empty(t, pub.events)
}

func TestSynchronizeDedupeFirstWins(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	uc, _ := newTestUsecase(repo)

	entries := []alert.SnapshotEntry{
		{Key: "dup", Summary: "first", URL: "https://example.com/1", Priority: model.PriorityHigh},
		{Key: "dup", Summary: "second", URL: "https://example.com/2", Priority: model.PriorityUrgent},
		{Key: "solo", Summary: "solo", URL: "https://example.com/3", Priority: model.PriorityHigh},
	}

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", entries)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Received)
	assert.Equal(t, 2, report.Deduped)
	assert.Equal(t, 2, report.Created)

	dup, err := repo.List(ctx, repository.ListOptions{Filter: repository.Filter{Keys: []string{"dup"}}})
	require.NoError(t, err)
	require.Len(t, dup, 1)
	assert.Equal(t, "first", dup[0].Summary)
	assert.Equal(t, model.PriorityHigh, dup[0].Priority)
}

func TestSynchronizeOwnerAssignment(t *testing.T) {
	ctx := context.Background()

	existing := openAlert("id-1", "ci-build", "owned")
	repo := &fakeRepo{alerts: []model.Alert{existing}}
	uc, pub := newTestUsecase(repo)

	email := "ops@example.com"
	entry := entryFor(existing)
	entry.CheckedOutByEmail = &email

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", []alert.SnapshotEntry{entry})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	updated, err := repo.Detail(ctx, "id-1")
	require.NoError(t, err)
	require.NotNil(t, updated.CheckedOutByID)
	assert.Equal(t, "user-1", *updated.CheckedOutByID)

	assert.Equal(t, []string{"alert:assign", "alert:ci-build:assign"}, pub.topics())

	// A second identical snapshot is a no-op: no new events, nothing updated.
	pub.events = nil
	report, err = uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", []alert.SnapshotEntry{entry})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 1, report.Unchanged)
	assert.Empty(t, pub.events)
}

func TestSynchronizeUnknownOwnerClearsAssignment(t *testing.T) {
	ctx := context.Background()

	ownerID := "user-1"
	ownerEmail := "ops@example.com"
	existing := openAlert("id-1", "ci-build", "owned")
	existing.CheckedOutByEmail = &ownerEmail
	existing.CheckedOutByID = &ownerID

	repo := &fakeRepo{alerts: []model.Alert{existing}}
	uc, pub := newTestUsecase(repo)

	strangerEmail := "stranger@example.com"
	entry := entryFor(existing)
	entry.CheckedOutByEmail = &strangerEmail

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", []alert.SnapshotEntry{entry})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	updated, err := repo.Detail(ctx, "id-1")
	require.NoError(t, err)
	assert.Nil(t, updated.CheckedOutByID)
	require.NotNil(t, updated.CheckedOutByEmail)
	assert.Equal(t, strangerEmail, *updated.CheckedOutByEmail)

	// Known owner to nobody is still an ownership change.
	assert.Equal(t, []string{"alert:assign", "alert:ci-build:assign"}, pub.topics())
}

func TestSynchronizeProjectResolution(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	uc, _ := newTestUsecase(repo)

	slug := "payments"
	unknownSlug := "does-not-exist"
	entries := []alert.SnapshotEntry{
		{Key: "a", Summary: "s", URL: "https://example.com/a", Priority: model.PriorityHigh, ProjectSlug: &slug},
		{Key: "b", Summary: "s", URL: "https://example.com/b", Priority: model.PriorityHigh, ProjectSlug: &unknownSlug},
	}

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", entries)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)

	linked, err := repo.List(ctx, repository.ListOptions{Filter: repository.Filter{Keys: []string{"a"}}})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	require.NotNil(t, linked[0].ProjectID)
	assert.Equal(t, "project-1", *linked[0].ProjectID)

	unlinked, err := repo.List(ctx, repository.ListOptions{Filter: repository.Filter{Keys: []string{"b"}}})
	require.NoError(t, err)
	require.Len(t, unlinked, 1)
	assert.Nil(t, unlinked[0].ProjectID)
}

func TestSynchronizeInvalidEntrySkippedAndRecorded(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	uc, _ := newTestUsecase(repo)

	entries := []alert.SnapshotEntry{
		{Key: "bad", Summary: "", URL: "https://example.com/bad", Priority: model.PriorityHigh},
		{Key: "worse", Summary: "s", URL: "https://example.com/worse", Priority: "medium"},
		{Key: "good", Summary: "s", URL: "https://example.com/good", Priority: model.PriorityUrgent},
	}

	report, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", entries)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "bad", report.Failures[0].Key)
	assert.Contains(t, report.Failures[0].Reason, "summary")
	assert.Equal(t, "worse", report.Failures[1].Key)
	assert.Contains(t, report.Failures[1].Reason, "priority")

	all, err := repo.List(ctx, repository.ListOptions{Filter: repository.Filter{Type: "ci-build"}})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "good", all[0].Key)
}

func TestSynchronizeSummaryTruncatedOnCreate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	uc, _ := newTestUsecase(repo)

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	_, err := uc.Synchronize(ctx, alert.SyncModeOpen, "ci-build", []alert.SnapshotEntry{
		{Key: "long", Summary: string(long), URL: "https://example.com/long", Priority: model.PriorityHigh},
	})
	require.NoError(t, err)

	got, err := repo.List(ctx, repository.ListOptions{Filter: repository.Filter{Keys: []string{"long"}}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Summary, 255)
	assert.Equal(t, "...", got[0].Summary[252:])
}
