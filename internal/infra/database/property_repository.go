package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

type PropertyRepository struct {
	db querier
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, address, price, bedrooms, bathrooms, sqft, media,
	property_type, status, year_built, features, created_at, updated_at`

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Address, p.Price, p.Bedrooms, p.Bathrooms, p.Sqft,
		pq.Array(p.Media), p.PropertyType, p.Status, p.YearBuilt,
		pq.Array(p.Features), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return r.scanProperty(r.db.QueryRowContext(ctx, query, id))
}

func (r *PropertyRepository) List(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	query := `
		SELECT ` + propertyColumns + ` FROM properties
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR property_type = $2)
		  AND ($3 <= 0 OR price >= $3)
		  AND ($4 <= 0 OR price <= $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6
	`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, query,
		filter.Status, filter.PropertyType, filter.MinPrice, filter.MaxPrice,
		limit, filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		p, err := r.scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	query := `
		UPDATE properties SET
			address = $2, price = $3, bedrooms = $4, bathrooms = $5, sqft = $6,
			media = $7, property_type = $8, status = $9, year_built = $10,
			features = $11, updated_at = $12
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Address, p.Price, p.Bedrooms, p.Bathrooms, p.Sqft,
		pq.Array(p.Media), p.PropertyType, p.Status, p.YearBuilt,
		pq.Array(p.Features), p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) scanProperty(row rowScanner) (*entity.Property, error) {
	var p entity.Property
	err := row.Scan(
		&p.ID, &p.Address, &p.Price, &p.Bedrooms, &p.Bathrooms, &p.Sqft,
		pq.Array(&p.Media), &p.PropertyType, &p.Status, &p.YearBuilt,
		pq.Array(&p.Features), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}
