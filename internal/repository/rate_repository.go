package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
)

// RateRepository stores rate snapshots in the exchange_rate table, one row
// per currency and date. A snapshot is the set of rows sharing a date.
type RateRepository struct {
	db *sql.DB
}

// NewRateRepository creates a new RateRepository with the provided database connection.
func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// FindSnapshot returns whatever rows are stored for the day, which may be an
// incomplete snapshot. Returns ErrSnapshotNotFound if there are none.
func (r *RateRepository) FindSnapshot(ctx context.Context, day time.Time) (*model.RateSnapshot, error) {
	query := `
		SELECT from_currency, rate
		FROM exchange_rate
		WHERE date = ? AND to_currency = ?
	`

	rows, err := r.db.QueryContext(ctx, query, model.DateKey(day), string(model.ReferenceCurrency))
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	snap := &model.RateSnapshot{
		Date:  model.Day(day),
		Rates: make(map[model.Currency]float64),
	}
	for rows.Next() {
		var code string
		var rate float64
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		snap.Rates[model.Currency(code)] = rate
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}

	if len(snap.Rates) == 0 {
		return nil, apperrors.ErrSnapshotNotFound
	}
	return snap, nil
}

// UpsertSnapshot writes every rate of the snapshot for its date, replacing
// existing rows. The whole snapshot is written in one transaction so racing
// writers each leave a complete set behind.
func (r *RateRepository) UpsertSnapshot(ctx context.Context, snap model.RateSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO exchange_rate (id, from_currency, to_currency, rate, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (from_currency, to_currency, date)
		DO UPDATE SET rate = excluded.rate, created_at = CURRENT_TIMESTAMP
	`

	dateKey := snap.DateKey()
	for _, code := range model.SupportedCurrencies {
		rate, ok := snap.Rates[code]
		if !ok {
			continue
		}
		_, err := tx.ExecContext(ctx, query,
			uuid.New().String(),
			string(code),
			string(model.ReferenceCurrency),
			rate,
			dateKey,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert rate %s for %s: %w", code, dateKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rate snapshot: %w", err)
	}
	return nil
}

// FindLatestCompleteBefore returns the most recent complete snapshot dated
// strictly before day. Returns ErrSnapshotNotFound if there is none.
func (r *RateRepository) FindLatestCompleteBefore(ctx context.Context, day time.Time) (*model.RateSnapshot, error) {
	placeholders := make([]string, len(model.SupportedCurrencies))
	args := []any{string(model.ReferenceCurrency), model.DateKey(day)}
	for i, c := range model.SupportedCurrencies {
		placeholders[i] = "?"
		args = append(args, string(c))
	}
	args = append(args, len(model.SupportedCurrencies))

	query := `
		SELECT date
		FROM exchange_rate
		WHERE to_currency = ? AND date < ? AND rate > 0
		AND from_currency IN (` + strings.Join(placeholders, ",") + `)
		GROUP BY date
		HAVING COUNT(DISTINCT from_currency) = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var dateStr string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&dateStr)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest complete snapshot: %w", err)
	}

	date, err := ParseDate(dateStr, day.Location())
	if err != nil {
		return nil, err
	}
	return r.FindSnapshot(ctx, date)
}
