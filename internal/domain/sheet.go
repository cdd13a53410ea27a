package domain

import (
	"time"

	"github.com/google/uuid"
)

// SheetStatus represents the visibility of a sheet
type SheetStatus string

const (
	SheetStatusPublic  SheetStatus = "public"
	SheetStatusPrivate SheetStatus = "private"
)

// Sheet is a curated, ordered list of problems
type Sheet struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	CreatedBy   uuid.UUID   `db:"created_by" json:"createdBy"`
	Status      SheetStatus `db:"status" json:"status"`
	Slug        string      `db:"slug" json:"slug"`
	Problems    []uuid.UUID `json:"problems"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}
