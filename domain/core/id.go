package core

import (
	"github.com/google/uuid"
)

// NewUUID creates a new identifier using UUID v7 so IDs sort by creation
// time. Falls back to v4 if v7 is not available.
func NewUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id
}
