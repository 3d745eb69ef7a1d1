package model

import (
	"time"
)

// Team is a named aggregate owning a set of member users. A team name is
// unique across all teams (case-sensitive); the unique index enforces this
// at the storage layer. Members are the users whose TeamID points at this
// team.
type Team struct {
	ID          int       `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Members     []User    `json:"members" gorm:"foreignKey:TeamID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
