package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const recordColumns = `id, name, mime_type, size, data, text_content, created_at, checksum`

// Get retrieves a single record by identity.
// Returns an error wrapping ErrNotFound if no such record exists.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	db, err := s.handle("get")
	if err != nil {
		return Record{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, &Error{Code: ErrCodeRead, Op: "get", ID: id, Err: err}
	}
	return rec, nil
}

// GetAll returns every record in ascending identity order.
// Returns an empty slice (not nil) if the store holds no records.
func (s *Store) GetAll(ctx context.Context) ([]Record, error) {
	db, err := s.handle("get_all")
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, Op: "get_all", Err: err}
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &Error{Code: ErrCodeRead, Op: "get_all", ID: rec.ID, Err: err}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, &Error{Code: ErrCodeRead, Op: "get_all", Err: fmt.Errorf("iterate records: %w", err)}
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	db, err := s.handle("count")
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, &Error{Code: ErrCodeRead, Op: "count", Err: err}
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row and verifies it against its stored checksum.
func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		text      sql.NullString
		createdAt string
	)

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.MimeType,
		&rec.Size,
		&rec.Data,
		&text,
		&createdAt,
		&rec.Checksum,
	)
	if err != nil {
		return rec, err
	}

	if rec.Data == nil {
		rec.Data = []byte{}
	}
	if text.Valid {
		rec.TextContent = &text.String
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return rec, fmt.Errorf("parse created_at: %w", err)
	}

	if int64(len(rec.Data)) != rec.Size {
		return rec, fmt.Errorf("record %d: size %d does not match %d stored bytes", rec.ID, rec.Size, len(rec.Data))
	}
	if sum := Checksum(rec.Data); sum != rec.Checksum {
		return rec, fmt.Errorf("record %d: checksum mismatch", rec.ID)
	}

	return rec, nil
}
