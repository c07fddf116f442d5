package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/watchfour/shiftlog/internal/constants"
)

// Note is free text attached to a day.
type Note struct {
	ID        string     `json:"id"`
	Day       string     `json:"day"` // YYYY-MM-DD format
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (n *Note) Validate() error {
	if strings.TrimSpace(n.Body) == "" {
		return fmt.Errorf("note body cannot be empty")
	}
	if n.Day == "" {
		return fmt.Errorf("note day cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, n.Day); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return nil
}
