package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avila-law/intake-platform/internal/leads"
	"github.com/avila-law/intake-platform/pkg/logging"
)

func newTestWorker(t *testing.T) (*Worker, *leads.InMemoryRepository) {
	t.Helper()
	repo := leads.NewInMemoryRepository()
	w := NewWorker(repo, repo, logging.Default())
	return w, repo
}

func TestRunPassScoresAndAssigns(t *testing.T) {
	w, repo := newTestWorker(t)
	w.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	repo.SetAgents([]*leads.Agent{
		{ID: "att-1", Name: "Ana Ruiz", Role: "attorney", OpenLeads: 3},
		{ID: "staff-1", Name: "Front Desk", Role: "paralegal", OpenLeads: 1},
	})

	hot, err := repo.Create(context.Background(), &leads.CreateLeadRequest{
		Name:         "Maria Lopez",
		Email:        "maria@example.com",
		Phone:        "9195551234",
		PracticeArea: "personal_injury",
		Source:       "referral",
		Urgency:      leads.UrgencyHigh,
	})
	require.NoError(t, err)

	cold, err := repo.Create(context.Background(), &leads.CreateLeadRequest{
		Name:   "Old Inquiry",
		Email:  "old@example.com",
		Source: "social_media",
	})
	require.NoError(t, err)

	res, err := w.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scored)
	assert.Equal(t, 1, res.Assigned)

	got, err := repo.GetByID(context.Background(), hot.ID)
	require.NoError(t, err)
	// recency 30 + area 20 + referral 25 + contact 20 + high 15, clamped.
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, leads.UrgencyCritical, got.Urgency)
	require.NotNil(t, got.AssignedToID)
	assert.Equal(t, "att-1", *got.AssignedToID)
	require.NotNil(t, got.AssignedAt)
	assert.Equal(t, w.now().UTC(), got.AssignedAt.UTC())

	got, err = repo.GetByID(context.Background(), cold.ID)
	require.NoError(t, err)
	// recency 30 + social_media 10 + email 5 + name 5 + low 5 = 55.
	assert.Equal(t, 55, got.Score)
	assert.Equal(t, leads.UrgencyMedium, got.Urgency)
	assert.Nil(t, got.AssignedToID)
}

func TestRunPassRescoresFromCurrentSnapshot(t *testing.T) {
	w, repo := newTestWorker(t)

	created, err := repo.Create(context.Background(), &leads.CreateLeadRequest{
		Name:  "Stale Lead",
		Email: "stale@example.com",
	})
	require.NoError(t, err)

	w.now = func() time.Time { return created.CreatedAt.Add(30 * time.Minute) }
	_, err = w.RunPass(context.Background())
	require.NoError(t, err)
	fresh, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	w.now = func() time.Time { return created.CreatedAt.Add(200 * time.Hour) }
	_, err = w.RunPass(context.Background())
	require.NoError(t, err)
	aged, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Less(t, aged.Score, fresh.Score)
}

func TestRunPassSkipsWhenAlreadyRunning(t *testing.T) {
	w, repo := newTestWorker(t)

	_, err := repo.Create(context.Background(), &leads.CreateLeadRequest{
		Name:  "Waiting Lead",
		Email: "wait@example.com",
	})
	require.NoError(t, err)

	w.running.Store(true)
	res, err := w.RunPass(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Scored)

	w.running.Store(false)
	res, err = w.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Scored)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	w, _ := newTestWorker(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, 50*time.Millisecond)
		close(done)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
