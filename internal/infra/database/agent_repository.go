package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

type AgentRepository struct {
	db querier
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentColumns = `id, name, email, phone, calendar_id, working_days,
	working_hours_start, working_hours_end, meeting_duration_minutes,
	buffer_minutes, timezone, is_active, total_meetings, completed_meetings,
	created_at, updated_at`

func (r *AgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	query := `
		INSERT INTO agents (` + agentColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		agent.ID, agent.Name, agent.Email, agent.Phone, agent.CalendarID,
		pq.Array(agent.WorkingDays),
		agent.WorkingHoursStart, agent.WorkingHoursEnd,
		agent.MeetingDurationMinutes, agent.BufferMinutes, agent.Timezone,
		agent.IsActive, agent.TotalMeetings, agent.CompletedMeetings,
		agent.CreatedAt, agent.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	return r.scanAgent(r.db.QueryRowContext(ctx, query, id))
}

func (r *AgentRepository) FindByName(ctx context.Context, name string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE name = $1 LIMIT 1`
	return r.scanAgent(r.db.QueryRowContext(ctx, query, name))
}

func (r *AgentRepository) List(ctx context.Context) ([]*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY created_at`
	return r.queryAgents(ctx, query)
}

// FindBookable returns active, calendar-linked agents in creation order.
// First-fit selection relies on this order being stable, not ranked.
func (r *AgentRepository) FindBookable(ctx context.Context) ([]*entity.Agent, error) {
	query := `
		SELECT ` + agentColumns + ` FROM agents
		WHERE is_active = true AND calendar_id IS NOT NULL
		ORDER BY created_at
	`
	return r.queryAgents(ctx, query)
}

func (r *AgentRepository) Update(ctx context.Context, agent *entity.Agent) error {
	query := `
		UPDATE agents SET
			name = $2, phone = $3, calendar_id = NULLIF($4, ''), working_days = $5,
			working_hours_start = $6, working_hours_end = $7,
			meeting_duration_minutes = $8, buffer_minutes = $9, timezone = $10,
			is_active = $11, updated_at = $12
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		agent.ID, agent.Name, agent.Phone, agent.CalendarID,
		pq.Array(agent.WorkingDays),
		agent.WorkingHoursStart, agent.WorkingHoursEnd,
		agent.MeetingDurationMinutes, agent.BufferMinutes, agent.Timezone,
		agent.IsActive, agent.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAgentNotFound
	}
	return nil
}

func (r *AgentRepository) IncrementTotalMeetings(ctx context.Context, id string) error {
	return r.increment(ctx, id, "total_meetings")
}

func (r *AgentRepository) IncrementCompletedMeetings(ctx context.Context, id string) error {
	return r.increment(ctx, id, "completed_meetings")
}

func (r *AgentRepository) increment(ctx context.Context, id, column string) error {
	// column comes from the two callers above, never from input.
	query := `UPDATE agents SET ` + column + ` = ` + column + ` + 1, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAgentNotFound
	}
	return nil
}

func (r *AgentRepository) queryAgents(ctx context.Context, query string, args ...interface{}) ([]*entity.Agent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*entity.Agent
	for rows.Next() {
		agent, err := r.scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

func (r *AgentRepository) scanAgent(row rowScanner) (*entity.Agent, error) {
	var (
		agent      entity.Agent
		calendarID sql.NullString
	)
	err := row.Scan(
		&agent.ID, &agent.Name, &agent.Email, &agent.Phone, &calendarID,
		pq.Array(&agent.WorkingDays),
		&agent.WorkingHoursStart, &agent.WorkingHoursEnd,
		&agent.MeetingDurationMinutes, &agent.BufferMinutes, &agent.Timezone,
		&agent.IsActive, &agent.TotalMeetings, &agent.CompletedMeetings,
		&agent.CreatedAt, &agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAgentNotFound
		}
		return nil, err
	}
	agent.CalendarID = calendarID.String
	return &agent, nil
}
