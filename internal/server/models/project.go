package models

import "time"

// Project statuses.
const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusArchived = "ARCHIVED"
)

// Project groups related documents together (a work order).
type Project struct {
	ID        string
	Name      string
	Status    string
	CreatedAt time.Time
}

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	return s == ProjectStatusActive || s == ProjectStatusArchived
}
