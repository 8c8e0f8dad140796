package models

import "time"

// Rule is a free-text scheduling constraint. Only active rules influence
// generation; interpretation happens at run time, not at save time.
type Rule struct {
	ID          string    `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
