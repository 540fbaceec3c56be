package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("leads: querier required")
	}
	return &PostgresRepository{pool: q}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = UrgencyLow
	}
	id := uuid.New()
	query := `
		INSERT INTO leads (id, name, email, phone, message, practice_area, source, status, urgency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Message,
		req.PracticeArea,
		req.Source,
		StatusNew,
		urgency,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:           id.String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		PracticeArea: req.PracticeArea,
		Source:       req.Source,
		Status:       StatusNew,
		Urgency:      urgency,
		CreatedAt:    createdAt,
	}, nil
}

const leadColumns = `id, name, email, phone, message, practice_area, source, status, urgency, score, assigned_to_id, assigned_at, last_contact_at, created_at`

func scanLead(row pgx.Row) (*Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Message,
		&lead.PracticeArea,
		&lead.Source,
		&lead.Status,
		&lead.Urgency,
		&lead.Score,
		&lead.AssignedToID,
		&lead.AssignedAt,
		&lead.LastContactAt,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// ListScorable returns leads with status new or contacted, oldest first.
func (r *PostgresRepository) ListScorable(ctx context.Context) ([]*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE status IN ($1, $2) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, StatusNew, StatusContacted)
	if err != nil {
		return nil, fmt.Errorf("leads: list scorable failed: %w", err)
	}
	defer rows.Close()

	var out []*Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: rows failed: %w", err)
	}
	return out, nil
}

// UpdateScore writes the recomputed score and derived urgency.
func (r *PostgresRepository) UpdateScore(ctx context.Context, id string, score int, urgency string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET score = $1, urgency = $2 WHERE id = $3`,
		score, urgency, id,
	)
	if err != nil {
		return fmt.Errorf("leads: update score failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// Assign sets the lead's agent and assignment time.
func (r *PostgresRepository) Assign(ctx context.Context, id, agentID string, assignedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET assigned_to_id = $1, assigned_at = $2 WHERE id = $3`,
		agentID, assignedAt, id,
	)
	if err != nil {
		return fmt.Errorf("leads: assign failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// ListAttorneys returns agents with role attorney and their open-lead
// counts.
func (r *PostgresRepository) ListAttorneys(ctx context.Context) ([]*Agent, error) {
	query := `
		SELECT a.id, a.name, a.role, COUNT(l.id) AS open_leads
		FROM agents a
		LEFT JOIN leads l ON l.assigned_to_id = a.id AND l.status NOT IN ($1, $2)
		WHERE a.role = 'attorney'
		GROUP BY a.id, a.name, a.role
		ORDER BY a.id
	`
	rows, err := r.pool.Query(ctx, query, StatusWon, StatusLost)
	if err != nil {
		return nil, fmt.Errorf("leads: list attorneys failed: %w", err)
	}
	defer rows.Close()

	var out []*Agent
	for rows.Next() {
		var agent Agent
		if err := rows.Scan(&agent.ID, &agent.Name, &agent.Role, &agent.OpenLeads); err != nil {
			return nil, fmt.Errorf("leads: scan agent failed: %w", err)
		}
		out = append(out, &agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: rows failed: %w", err)
	}
	return out, nil
}
