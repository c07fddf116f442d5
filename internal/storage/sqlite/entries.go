package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/storage"
)

const entryColumns = "id, day, code, start_time, end_time, break_min, comment, created_at, updated_at, deleted_at"

func scanEntry(scan func(dest ...any) error) (models.ShiftEntry, error) {
	var e models.ShiftEntry
	var code, createdAt, updatedAt string
	var deletedAt sql.NullString

	if err := scan(&e.ID, &e.Day, &code, &e.Start, &e.End, &e.BreakMin, &e.Comment, &createdAt, &updatedAt, &deletedAt); err != nil {
		return models.ShiftEntry{}, err
	}
	e.Code = constants.EntryCode(code)

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.ShiftEntry{}, fmt.Errorf("failed to parse entry created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.ShiftEntry{}, fmt.Errorf("failed to parse entry updated_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.ShiftEntry{}, fmt.Errorf("failed to parse entry deleted_at: %w", err)
		}
		e.DeletedAt = &t
	}
	return e, nil
}

func (s *Store) AddEntry(entry models.ShiftEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	var deletedAt any
	if entry.DeletedAt != nil {
		deletedAt = entry.DeletedAt.UTC().Format(timestampLayout)
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO shift_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Day, string(entry.Code), entry.Start, entry.End,
		entry.BreakMin, entry.Comment,
		entry.CreatedAt.UTC().Format(timestampLayout),
		entry.UpdatedAt.UTC().Format(timestampLayout),
		deletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(id string) (models.ShiftEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM shift_entries WHERE id = ? AND deleted_at IS NULL`, id)
	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return models.ShiftEntry{}, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	return e, err
}

func (s *Store) GetEntriesForDay(day string) ([]models.ShiftEntry, error) {
	return s.queryEntries(`SELECT `+entryColumns+` FROM shift_entries WHERE day = ? AND deleted_at IS NULL ORDER BY start_time`, day)
}

func (s *Store) GetEntriesInRange(startDay, endDay string) ([]models.ShiftEntry, error) {
	return s.queryEntries(`SELECT `+entryColumns+` FROM shift_entries WHERE day >= ? AND day <= ? AND deleted_at IS NULL ORDER BY day, start_time`, startDay, endDay)
}

func (s *Store) GetAllEntries(includeDeleted bool) ([]models.ShiftEntry, error) {
	if includeDeleted {
		return s.queryEntries(`SELECT ` + entryColumns + ` FROM shift_entries ORDER BY day, start_time`)
	}
	return s.queryEntries(`SELECT ` + entryColumns + ` FROM shift_entries WHERE deleted_at IS NULL ORDER BY day, start_time`)
}

func (s *Store) queryEntries(query string, args ...any) ([]models.ShiftEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ShiftEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) UpdateEntry(entry models.ShiftEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE shift_entries
		SET day = ?, code = ?, start_time = ?, end_time = ?, break_min = ?, comment = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		entry.Day, string(entry.Code), entry.Start, entry.End, entry.BreakMin, entry.Comment,
		time.Now().UTC().Format(timestampLayout), entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireRow(res, "entry", entry.ID)
}

func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec(`UPDATE shift_entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(timestampLayout), id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireRow(res, "entry", id)
}

func (s *Store) RestoreEntry(id string) error {
	res, err := s.db.Exec(`UPDATE shift_entries SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to restore entry: %w", err)
	}
	return requireRow(res, "deleted entry", id)
}
