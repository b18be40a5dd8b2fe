package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CookingSession records a finished live cooking run
type CookingSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StartedAt time.Time `gorm:"not null;index" json:"date"`
	Duration  int       `gorm:"not null" json:"duration"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
}

func (s *CookingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
