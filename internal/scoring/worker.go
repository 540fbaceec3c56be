package scoring

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avila-law/intake-platform/internal/leads"
	"github.com/avila-law/intake-platform/internal/observability/metrics"
	"github.com/avila-law/intake-platform/pkg/logging"
)

// PassResult summarizes one scoring pass.
type PassResult struct {
	Scored   int
	Assigned int
	Skipped  int
}

// Worker rescores open leads and routes the high scorers to attorneys.
type Worker struct {
	repo    leads.Repository
	agents  leads.AgentRepository
	logger  *logging.Logger
	metrics *metrics.IntakeMetrics
	now     func() time.Time
	running atomic.Bool
}

// NewWorker creates a scoring worker. repo and agents are required.
func NewWorker(repo leads.Repository, agents leads.AgentRepository, logger *logging.Logger) *Worker {
	if repo == nil {
		panic("scoring: repo is required")
	}
	if agents == nil {
		panic("scoring: agents is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Worker{repo: repo, agents: agents, logger: logger, now: time.Now}
}

// UseMetrics attaches Prometheus instrumentation to the worker.
func (w *Worker) UseMetrics(m *metrics.IntakeMetrics) {
	w.metrics = m
}

// RunPass rescores every lead with status new or contacted, persists the new
// score and derived urgency, then assigns qualifying leads. A pass that starts
// while another is still running returns immediately with a zero result.
// Per-row write failures are logged and do not abort the pass.
func (w *Worker) RunPass(ctx context.Context) (PassResult, error) {
	if !w.running.CompareAndSwap(false, true) {
		w.logger.Warn("scoring: pass already running, skipping")
		return PassResult{}, nil
	}
	defer w.running.Store(false)

	now := w.now().UTC()
	started := time.Now()

	scorable, err := w.repo.ListScorable(ctx)
	if err != nil {
		w.metrics.ObserveScoringPass("error", time.Since(started).Seconds())
		return PassResult{}, fmt.Errorf("scoring: list leads: %w", err)
	}

	var res PassResult
	for _, lead := range scorable {
		score := Score(lead, lead.Contact(), now)
		urgency := DeriveUrgency(score)
		if err := w.repo.UpdateScore(ctx, lead.ID, score, urgency); err != nil {
			w.logger.Error("scoring: update score failed",
				"lead_id", lead.ID, "error", err)
			continue
		}
		lead.Score = score
		lead.Urgency = urgency
		res.Scored++
	}

	attorneys, err := w.agents.ListAttorneys(ctx)
	if err != nil {
		w.metrics.ObserveScoringPass("error", time.Since(started).Seconds())
		return res, fmt.Errorf("scoring: list attorneys: %w", err)
	}

	assignments, skipped := AssignLeads(scorable, attorneys)
	for _, id := range skipped {
		w.logger.Warn("scoring: no attorney with capacity, lead left unassigned",
			"lead_id", id)
	}
	res.Skipped = len(skipped)

	for _, a := range assignments {
		if err := w.repo.Assign(ctx, a.LeadID, a.AgentID, now); err != nil {
			w.logger.Error("scoring: assign failed",
				"lead_id", a.LeadID, "agent_id", a.AgentID, "error", err)
			continue
		}
		res.Assigned++
	}

	w.metrics.ObserveScoringPass("ok", time.Since(started).Seconds())
	w.metrics.ObserveLeadsAssigned(res.Assigned)
	w.logger.Info("scoring: pass complete",
		"scored", res.Scored, "assigned", res.Assigned, "skipped", res.Skipped)
	return res, nil
}

// Run executes a pass immediately, then on every interval tick until the
// context is cancelled.
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := w.RunPass(ctx); err != nil {
		w.logger.Error("scoring: pass failed", "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.RunPass(ctx); err != nil {
				w.logger.Error("scoring: pass failed", "error", err)
			}
		}
	}
}
