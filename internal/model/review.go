package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a rated comment left on a recipe
type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName string    `gorm:"size:50;not null" json:"user_name"`
	Rating   int       `gorm:"not null" json:"rating"`
	Comment  string    `gorm:"type:text;not null" json:"comment"`
	Date     time.Time `gorm:"not null;index" json:"date"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	return nil
}
