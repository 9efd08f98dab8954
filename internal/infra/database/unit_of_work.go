package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// every repository can run either standalone or inside a unit of work.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// UnitOfWork binds lead, agent and meeting repositories to one transaction.
// fn's writes commit together or not at all.
type UnitOfWork struct {
	DB *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{DB: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos usecase.RepoSet) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := usecase.RepoSet{
		Leads:    &LeadRepository{db: tx},
		Agents:   &AgentRepository{db: tx},
		Meetings: &MeetingRepository{db: tx},
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Printf("⚠️ rollback failed: %v (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
