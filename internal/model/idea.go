package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categories is the fixed set of idea categories accepted by the server.
var Categories = []string{"Education", "Environment", "Community", "Technology", "Health"}

// ValidCategory reports whether category is one of the allowed values.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Idea represents a submitted idea with its running vote count.
type Idea struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Category    string    `json:"category" gorm:"size:50;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Summary     string    `json:"summary" gorm:"size:500"`
	Votes       uint      `json:"votes" gorm:"not null;default:0"`
	Frozen      bool      `json:"frozen" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID before the record is inserted.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
