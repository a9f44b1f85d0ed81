package season

import (
	"strings"
	"time"
)

const (
	StatusUpcoming  = "UPCOMING"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// Season groups the games a standings table is computed over.
type Season struct {
	ID        string
	LeagueID  string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	Rules     Rules
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	switch status {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return status
	default:
		return StatusUpcoming
	}
}
