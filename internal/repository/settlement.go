package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
)

// SettlementRepository is the sqlite-backed settlement ledger.
// Every attempt is appended; references are not unique.
type SettlementRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSettlementRepository opens (and if needed creates) the ledger database
func NewSettlementRepository(dbPath string) (*SettlementRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settlements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			product_key TEXT NOT NULL DEFAULT '',
			operator_id INTEGER NOT NULL DEFAULT 0,
			customer_amount TEXT NOT NULL DEFAULT '0',
			vendor_amount TEXT NOT NULL DEFAULT '0',
			margin TEXT NOT NULL DEFAULT '0',
			destination TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL,
			vendor_status TEXT NOT NULL DEFAULT '',
			vendor_transaction_id TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_settlements_reference ON settlements(reference);
		CREATE INDEX IF NOT EXISTS idx_settlements_created_at ON settlements(created_at);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SettlementRepository{db: db, now: time.Now}, nil
}

// Close closes database connection
func (r *SettlementRepository) Close() error {
	return r.db.Close()
}

// Save appends a settlement attempt and fills its id and creation time
func (r *SettlementRepository) Save(ctx context.Context, rec *model.SettlementRecord) error {
	createdAt := r.now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO settlements (
			reference, category, product_key, operator_id,
			customer_amount, vendor_amount, margin, destination,
			state, vendor_status, vendor_transaction_id, message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Reference, string(rec.Category), rec.ProductKey, rec.OperatorID,
		rec.CustomerAmount.String(), rec.VendorAmount.String(), rec.Margin.String(), rec.Destination,
		string(rec.State), rec.VendorStatus, rec.VendorTransactionID, rec.Message, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settlement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read settlement id: %w", err)
	}
	rec.ID = id
	rec.CreatedAt = createdAt
	return nil
}

const selectSettlement = `
	SELECT id, reference, category, product_key, operator_id,
		customer_amount, vendor_amount, margin, destination,
		state, vendor_status, vendor_transaction_id, message, created_at
	FROM settlements`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row rowScanner) (*model.SettlementRecord, error) {
	var rec model.SettlementRecord
	var category, state string
	err := row.Scan(
		&rec.ID,
		&rec.Reference,
		&category,
		&rec.ProductKey,
		&rec.OperatorID,
		&rec.CustomerAmount,
		&rec.VendorAmount,
		&rec.Margin,
		&rec.Destination,
		&state,
		&rec.VendorStatus,
		&rec.VendorTransactionID,
		&rec.Message,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Category = model.Category(category)
	rec.State = model.SettlementState(state)
	return &rec, nil
}

// LatestByReference returns the most recent attempt for a reference
func (r *SettlementRepository) LatestByReference(ctx context.Context, reference string) (*model.SettlementRecord, error) {
	row := r.db.QueryRowContext(ctx, selectSettlement+`
		WHERE reference = ?
		ORDER BY id DESC
		LIMIT 1
	`, reference)

	rec, err := scanSettlement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errx.New(errx.KindTransactionNotFound, "no settlement recorded for reference")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settlement: %w", err)
	}
	return rec, nil
}

// DeleteOlderThan removes attempts recorded before cutoff
func (r *SettlementRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM settlements WHERE created_at < ?
	`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count returns the number of recorded attempts
func (r *SettlementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settlements`).Scan(&count)
	return count, err
}
