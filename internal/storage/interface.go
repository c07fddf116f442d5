package storage

import "github.com/watchfour/shiftlog/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Notes
	AddNote(models.Note) error
	GetNote(id string) (models.Note, error)
	GetNotesForDay(day string) ([]models.Note, error)
	GetNotesInRange(startDay, endDay string) ([]models.Note, error)
	GetAllNotes(includeDeleted bool) ([]models.Note, error)
	UpdateNote(models.Note) error
	DeleteNote(id string) error
	RestoreNote(id string) error

	// Shift entries
	AddEntry(models.ShiftEntry) error
	GetEntry(id string) (models.ShiftEntry, error)
	GetEntriesForDay(day string) ([]models.ShiftEntry, error)
	GetEntriesInRange(startDay, endDay string) ([]models.ShiftEntry, error)
	GetAllEntries(includeDeleted bool) ([]models.ShiftEntry, error)
	UpdateEntry(models.ShiftEntry) error
	DeleteEntry(id string) error
	RestoreEntry(id string) error

	// Utils
	GetConfigPath() string
}
