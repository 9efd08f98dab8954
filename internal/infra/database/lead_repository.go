package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"
	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

type LeadRepository struct {
	db querier
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `id, name, email, phone, status, source, assigned_agent,
	budget, property_type_preference, timeline, notes,
	last_contacted_at, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Status, lead.Source,
		lead.AssignedAgent, lead.Budget, lead.PropertyTypePreference,
		lead.Timeline, lead.Notes,
		lead.LastContactedAt, lead.CreatedAt, lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("lead insert failed: %v", err)
		return err
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanLead(r.db.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = lower($1)`
	return r.scanLead(r.db.QueryRowContext(ctx, query, email))
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + ` FROM leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR source = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, query, filter.Status, filter.Source, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := r.scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, phone = $3, status = $4, source = $5, assigned_agent = $6,
			budget = $7, property_type_preference = $8, timeline = $9, notes = $10,
			last_contacted_at = $11, updated_at = $12
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Phone, lead.Status, lead.Source, lead.AssignedAgent,
		lead.Budget, lead.PropertyTypePreference, lead.Timeline, lead.Notes,
		lead.LastContactedAt, lead.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// Upsert merges by email: blank incoming fields never wipe values the lead
// already has. Used by webhook ingestion, where re-submission is expected.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), leads.name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			source = COALESCE(NULLIF(EXCLUDED.source, ''), leads.source),
			budget = COALESCE(NULLIF(EXCLUDED.budget, ''), leads.budget),
			property_type_preference = COALESCE(NULLIF(EXCLUDED.property_type_preference, ''), leads.property_type_preference),
			timeline = COALESCE(NULLIF(EXCLUDED.timeline, ''), leads.timeline),
			notes = COALESCE(NULLIF(EXCLUDED.notes, ''), leads.notes),
			updated_at = NOW()
		RETURNING id, status, assigned_agent, last_contacted_at, created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Status, lead.Source,
		lead.AssignedAgent, lead.Budget, lead.PropertyTypePreference,
		lead.Timeline, lead.Notes,
		lead.LastContactedAt, lead.CreatedAt, lead.UpdatedAt,
	).Scan(
		&lead.ID, &lead.Status, &lead.AssignedAgent,
		&lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *LeadRepository) scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Status, &lead.Source,
		&lead.AssignedAgent, &lead.Budget, &lead.PropertyTypePreference,
		&lead.Timeline, &lead.Notes,
		&lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}
