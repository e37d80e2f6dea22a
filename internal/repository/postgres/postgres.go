package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agriempower/backend/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// PostgresRepository implements domain.AuditRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the audit tables when they do not exist yet
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// SavePredictionLog persists a fertility prediction to PostgreSQL
func (r *PostgresRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			id, moisture, ph, nitrogen, phosphorus, potassium,
			fertility, confidence, training_size, cached, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	f := entry.Features
	_, err := r.pool.Exec(ctx, query,
		entry.ID, f.Moisture, f.PH, f.Nitrogen, f.Phosphorus, f.Potassium,
		string(entry.Fertility), entry.Confidence, entry.TrainingSize, entry.Cached, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// SaveImageAnalysisLog persists a crop image classification to PostgreSQL
func (r *PostgresRepository) SaveImageAnalysisLog(ctx context.Context, entry domain.ImageAnalysisLog) error {
	query := `
		INSERT INTO image_analysis_logs (
			id, filename, width, height, brightness, condition, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Filename, entry.Width, entry.Height,
		entry.Brightness, string(entry.Condition), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save image analysis log: %w", err)
	}

	return nil
}

// RecentPredictions retrieves the latest prediction logs from PostgreSQL
func (r *PostgresRepository) RecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	query := `
		SELECT id::text, moisture, ph, nitrogen, phosphorus, potassium,
			   fertility, confidence, training_size, cached, created_at
		FROM prediction_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var results []domain.PredictionLog
	for rows.Next() {
		var (
			p         domain.PredictionLog
			fertility string
		)
		err := rows.Scan(
			&p.ID, &p.Features.Moisture, &p.Features.PH, &p.Features.Nitrogen,
			&p.Features.Phosphorus, &p.Features.Potassium,
			&fertility, &p.Confidence, &p.TrainingSize, &p.Cached, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prediction row: %w", err)
		}
		p.Fertility = domain.FertilityLabel(fertility)
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read prediction rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
