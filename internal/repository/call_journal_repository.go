package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("call not found")

const (
	CallStatusSuccess = "success"
	CallStatusFailed  = "failed"
)

// createdAtLayout is fixed width so created_at sorts as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// CallRecord is one dispatcher invocation as kept in the journal.
type CallRecord struct {
	ID           string    `json:"id"`
	Mode         int       `json:"mode"`
	IDOName      string    `json:"ido_name"`
	HTTPMethod   string    `json:"http_method"`
	MethodPath   string    `json:"method_path"`
	ItemID       string    `json:"item_id,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CallJournalRepository struct {
	db *sql.DB
}

func NewCallJournalRepository(db *sql.DB) *CallJournalRepository {
	return &CallJournalRepository{db: db}
}

func (r *CallJournalRepository) Create(ctx context.Context, rec *CallRecord) error {
	query := `
	INSERT INTO ido_calls (id, mode, ido_name, http_method, method_path, item_id, status, error_message, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Mode,
		rec.IDOName,
		rec.HTTPMethod,
		rec.MethodPath,
		rec.ItemID,
		rec.Status,
		rec.ErrorMessage,
		rec.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("create call record: %w", err)
	}

	return nil
}

func (r *CallJournalRepository) GetByID(ctx context.Context, id string) (*CallRecord, error) {
	query := `
	SELECT id, mode, ido_name, http_method, method_path, item_id, status, error_message, created_at
	FROM ido_calls WHERE id = ?
	`

	rec, err := scanCall(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get call record: %w", err)
	}
	return rec, nil
}

// ListRecent returns at most limit records, newest first.
func (r *CallJournalRepository) ListRecent(ctx context.Context, limit int) ([]CallRecord, error) {
	query := `
	SELECT id, mode, ido_name, http_method, method_path, item_id, status, error_message, created_at
	FROM ido_calls ORDER BY created_at DESC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list call records: %w", err)
	}
	defer rows.Close()

	records := []CallRecord{}
	for rows.Next() {
		rec, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan call record: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCall(row rowScanner) (*CallRecord, error) {
	var (
		rec       CallRecord
		itemID    sql.NullString
		errMsg    sql.NullString
		createdAt string
	)

	err := row.Scan(
		&rec.ID,
		&rec.Mode,
		&rec.IDOName,
		&rec.HTTPMethod,
		&rec.MethodPath,
		&itemID,
		&rec.Status,
		&errMsg,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ItemID = itemID.String
	rec.ErrorMessage = errMsg.String
	rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &rec, nil
}
