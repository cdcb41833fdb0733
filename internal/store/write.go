package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var errEmptyName = errors.New("record name is empty")

// Add inserts a new record built from d and returns its identity.
//
// The insert is a single statement, so the record is either fully stored or
// absent. Failures return an *Error with ErrCodeWrite; an empty name returns
// ErrCodeInvalid without touching the database.
func (s *Store) Add(ctx context.Context, d Draft) (int64, error) {
	db, err := s.handle("add")
	if err != nil {
		return 0, err
	}

	if d.Name == "" {
		return 0, &Error{Code: ErrCodeInvalid, Op: "add", Err: errEmptyName}
	}

	// A nil slice would bind as NULL.
	data := d.Data
	if data == nil {
		data = []byte{}
	}

	var text sql.NullString
	if d.TextContent != nil {
		text = sql.NullString{String: *d.TextContent, Valid: true}
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO records
		(name, mime_type, size, data, text_content, created_at, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		d.Name,
		d.MimeType,
		int64(len(data)),
		data,
		text,
		s.clock.Now().UTC().Format(time.RFC3339Nano),
		Checksum(data),
	)
	if err != nil {
		return 0, &Error{Code: ErrCodeWrite, Op: "add", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &Error{Code: ErrCodeWrite, Op: "add", Err: err}
	}
	return id, nil
}

// Delete removes the record with the given identity.
// Deleting an identity that does not exist is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	db, err := s.handle("delete")
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id); err != nil {
		return &Error{Code: ErrCodeWrite, Op: "delete", ID: id, Err: err}
	}
	return nil
}

// Clear removes every record in one transaction. Identities already handed
// out are not reused afterwards.
func (s *Store) Clear(ctx context.Context) error {
	db, err := s.handle("clear")
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &Error{Code: ErrCodeWrite, Op: "clear", Err: err}
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return &Error{Code: ErrCodeWrite, Op: "clear", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &Error{Code: ErrCodeWrite, Op: "clear", Err: err}
	}
	return nil
}
