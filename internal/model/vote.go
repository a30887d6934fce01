package model

import (
	"time"

	"github.com/google/uuid"
)

// Vote records that a user voted for an idea. The composite unique index is
// what enforces at-most-one-vote-per-user-per-idea: recording a vote is an
// insert that the database rejects on duplicates.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IdeaID    uuid.UUID `json:"idea_id" gorm:"type:char(36);not null;uniqueIndex:idx_votes_idea_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_votes_idea_user"`
	CreatedAt time.Time `json:"created_at"`
}
