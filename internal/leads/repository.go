package leads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage
type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	// ListScorable returns leads with status new or contacted, oldest first.
	ListScorable(ctx context.Context) ([]*Lead, error)
	UpdateScore(ctx context.Context, id string, score int, urgency string) error
	Assign(ctx context.Context, id, agentID string, assignedAt time.Time) error
}

// AgentRepository reads the attorneys that leads can be routed to.
type AgentRepository interface {
	// ListAttorneys returns agents with role attorney, each with its
	// current open-lead count.
	ListAttorneys(ctx context.Context) ([]*Agent, error)
}

// InMemoryRepository is an in-memory Repository and AgentRepository used in
// tests and environments without Postgres.
type InMemoryRepository struct {
	mu     sync.RWMutex
	leads  map[string]*Lead
	agents map[string]*Agent
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads:  make(map[string]*Lead),
		agents: make(map[string]*Agent),
	}
}

// Create creates a new lead in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = UrgencyLow
	}
	lead := &Lead{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		PracticeArea: req.PracticeArea,
		Source:       req.Source,
		Status:       StatusNew,
		Urgency:      urgency,
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	copied := *lead
	return &copied, nil
}

// ListScorable returns leads with status new or contacted, oldest first.
func (r *InMemoryRepository) ListScorable(ctx context.Context) ([]*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Lead
	for _, lead := range r.leads {
		if lead.Status != StatusNew && lead.Status != StatusContacted {
			continue
		}
		copied := *lead
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateScore writes the recomputed score and derived urgency.
func (r *InMemoryRepository) UpdateScore(ctx context.Context, id string, score int, urgency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return ErrLeadNotFound
	}
	lead.Score = score
	lead.Urgency = urgency
	return nil
}

// Assign sets the lead's agent and assignment time.
func (r *InMemoryRepository) Assign(ctx context.Context, id, agentID string, assignedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return ErrLeadNotFound
	}
	lead.AssignedToID = &agentID
	lead.AssignedAt = &assignedAt
	if agent, ok := r.agents[agentID]; ok {
		agent.OpenLeads++
	}
	return nil
}

// SetAgents seeds the agent pool. Open-lead counts are taken as given.
func (r *InMemoryRepository) SetAgents(agents []*Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.agents = make(map[string]*Agent, len(agents))
	for _, agent := range agents {
		copied := *agent
		r.agents[agent.ID] = &copied
	}
}

// ListAttorneys returns agents with role attorney, with open-lead counts.
func (r *InMemoryRepository) ListAttorneys(ctx context.Context) ([]*Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Agent
	for _, agent := range r.agents {
		if agent.Role != "attorney" {
			continue
		}
		copied := *agent
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
