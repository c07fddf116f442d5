package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/storage"
)

const noteColumns = "id, day, body, created_at, updated_at, deleted_at"

func scanNote(scan func(dest ...any) error) (models.Note, error) {
	var n models.Note
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	if err := scan(&n.ID, &n.Day, &n.Body, &createdAt, &updatedAt, &deletedAt); err != nil {
		return models.Note{}, err
	}

	var err error
	if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Note{}, fmt.Errorf("failed to parse note created_at: %w", err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Note{}, fmt.Errorf("failed to parse note updated_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Note{}, fmt.Errorf("failed to parse note deleted_at: %w", err)
		}
		n.DeletedAt = &t
	}
	return n, nil
}

func (s *Store) AddNote(note models.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	var deletedAt any
	if note.DeletedAt != nil {
		deletedAt = note.DeletedAt.UTC().Format(timestampLayout)
	}
	_, err := s.db.Exec(`
		INSERT INTO notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			day = EXCLUDED.day,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at`,
		note.ID, note.Day, note.Body,
		note.CreatedAt.UTC().Format(timestampLayout),
		note.UpdatedAt.UTC().Format(timestampLayout),
		deletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (s *Store) GetNote(id string) (models.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id = $1 AND deleted_at IS NULL`, id)
	n, err := scanNote(row.Scan)
	if err == sql.ErrNoRows {
		return models.Note{}, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	return n, err
}

func (s *Store) GetNotesForDay(day string) ([]models.Note, error) {
	return s.queryNotes(`SELECT `+noteColumns+` FROM notes WHERE day = $1 AND deleted_at IS NULL ORDER BY created_at`, day)
}

func (s *Store) GetNotesInRange(startDay, endDay string) ([]models.Note, error) {
	return s.queryNotes(`SELECT `+noteColumns+` FROM notes WHERE day >= $1 AND day <= $2 AND deleted_at IS NULL ORDER BY day, created_at`, startDay, endDay)
}

func (s *Store) GetAllNotes(includeDeleted bool) ([]models.Note, error) {
	if includeDeleted {
		return s.queryNotes(`SELECT ` + noteColumns + ` FROM notes ORDER BY day, created_at`)
	}
	return s.queryNotes(`SELECT ` + noteColumns + ` FROM notes WHERE deleted_at IS NULL ORDER BY day, created_at`)
}

func (s *Store) queryNotes(query string, args ...any) ([]models.Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) UpdateNote(note models.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE notes SET day = $1, body = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL`,
		note.Day, note.Body, time.Now().UTC().Format(timestampLayout), note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(res, "note", note.ID)
}

func (s *Store) DeleteNote(id string) error {
	res, err := s.db.Exec(`UPDATE notes SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(timestampLayout), id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireRow(res, "note", id)
}

func (s *Store) RestoreNote(id string) error {
	res, err := s.db.Exec(`UPDATE notes SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to restore note: %w", err)
	}
	return requireRow(res, "deleted note", id)
}

func requireRow(res sql.Result, kind, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
