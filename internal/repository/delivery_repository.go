package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// DeliveryRepository provides access to the single delivery_config row.
type DeliveryRepository struct {
	db *sql.DB
}

// NewDeliveryRepository creates a new DeliveryRepository with the provided database connection.
func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// GetDeliveryConfig returns the stored configuration or ErrDeliveryConfigNotFound.
func (r *DeliveryRepository) GetDeliveryConfig(ctx context.Context) (*model.DeliveryParameters, error) {
	query := `
		SELECT id, origin_expense, freight, processing_fee_min, processing_fee_max,
		service_fee_min, service_fee_max, updated_at
		FROM delivery_config
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var p model.DeliveryParameters
	var updatedAt sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.ID,
		&p.OriginExpense,
		&p.Freight,
		&p.ProcessingFeeMin,
		&p.ProcessingFeeMax,
		&p.ServiceFeeMin,
		&p.ServiceFeeMax,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrDeliveryConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery_config table: %w", err)
	}

	if updatedAt.Valid {
		if t, err := time.Parse(time.RFC3339, updatedAt.String); err == nil {
			p.UpdatedAt = t.UTC()
		}
	}

	return &p, nil
}

// GetOrCreate returns the stored configuration, inserting the defaults when
// none exists yet.
func (r *DeliveryRepository) GetOrCreate(ctx context.Context) (*model.DeliveryParameters, error) {
	p, err := r.GetDeliveryConfig(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperrors.ErrDeliveryConfigNotFound) {
		return nil, err
	}

	defaults := model.DefaultDeliveryParameters()
	if err := r.SaveDeliveryConfig(ctx, defaults); err != nil {
		return nil, err
	}
	return r.GetDeliveryConfig(ctx)
}

// SaveDeliveryConfig replaces the stored configuration.
func (r *DeliveryRepository) SaveDeliveryConfig(ctx context.Context, p model.DeliveryParameters) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivery_config`); err != nil {
		return fmt.Errorf("failed to clear delivery_config: %w", err)
	}

	query := `
		INSERT INTO delivery_config (id, origin_expense, freight, processing_fee_min,
		processing_fee_max, service_fee_min, service_fee_max, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		uuid.New().String(),
		p.OriginExpense,
		p.Freight,
		p.ProcessingFeeMin,
		p.ProcessingFeeMax,
		p.ServiceFeeMin,
		p.ServiceFeeMax,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert delivery_config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delivery_config: %w", err)
	}
	return nil
}
