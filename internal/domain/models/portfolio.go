package models

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio groups the positions of one investor.
type Portfolio struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Positions []Position `json:"positions"`
}
