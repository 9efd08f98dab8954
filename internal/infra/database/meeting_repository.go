package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

type MeetingRepository struct {
	db querier
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = `id, lead_name, lead_email, property_address, date_time, status,
	assigned_to, notes, calendar_event_id, calendar_event_link,
	reminded_at, created_at, updated_at`

func (r *MeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		INSERT INTO meetings (` + meetingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		meeting.ID, meeting.LeadName, meeting.LeadEmail, meeting.PropertyAddress,
		meeting.DateTime, meeting.Status, meeting.AssignedTo, meeting.Notes,
		meeting.CalendarEventID, meeting.CalendarEventLink,
		meeting.RemindedAt, meeting.CreatedAt, meeting.UpdatedAt,
	)
	return err
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`
	return r.scanMeeting(r.db.QueryRowContext(ctx, query, id))
}

func (r *MeetingRepository) List(ctx context.Context, filter entity.MeetingFilter) ([]*entity.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + ` FROM meetings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR assigned_to = $2)
		ORDER BY date_time
		LIMIT $3 OFFSET $4
	`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	return r.queryMeetings(ctx, query, filter.Status, filter.AssignedTo, limit, filter.Offset)
}

func (r *MeetingRepository) Update(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		UPDATE meetings SET
			date_time = $2, status = $3, notes = $4,
			calendar_event_id = NULLIF($5, ''), calendar_event_link = NULLIF($6, ''),
			updated_at = $7
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		meeting.ID, meeting.DateTime, meeting.Status, meeting.Notes,
		meeting.CalendarEventID, meeting.CalendarEventLink, meeting.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrMeetingNotFound
	}
	return nil
}

func (r *MeetingRepository) FindScheduledInWindow(ctx context.Context, assignedTo string, from, to time.Time) ([]*entity.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + ` FROM meetings
		WHERE assigned_to = $1 AND status = $2 AND date_time >= $3 AND date_time < $4
		ORDER BY date_time
	`
	return r.queryMeetings(ctx, query, assignedTo, entity.MeetingStatusScheduled, from, to)
}

func (r *MeetingRepository) FindDueForReminder(ctx context.Context, from, to time.Time) ([]*entity.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + ` FROM meetings
		WHERE status = $1 AND reminded_at IS NULL AND date_time >= $2 AND date_time < $3
		ORDER BY date_time
	`
	return r.queryMeetings(ctx, query, entity.MeetingStatusScheduled, from, to)
}

func (r *MeetingRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE meetings SET reminded_at = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrMeetingNotFound
	}
	return nil
}

func (r *MeetingRepository) queryMeetings(ctx context.Context, query string, args ...interface{}) ([]*entity.Meeting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []*entity.Meeting
	for rows.Next() {
		m, err := r.scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *MeetingRepository) scanMeeting(row rowScanner) (*entity.Meeting, error) {
	var (
		m         entity.Meeting
		eventID   sql.NullString
		eventLink sql.NullString
	)
	err := row.Scan(
		&m.ID, &m.LeadName, &m.LeadEmail, &m.PropertyAddress, &m.DateTime, &m.Status,
		&m.AssignedTo, &m.Notes, &eventID, &eventLink,
		&m.RemindedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrMeetingNotFound
		}
		return nil, err
	}
	m.CalendarEventID = eventID.String
	m.CalendarEventLink = eventLink.String
	return &m, nil
}
