package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Difficulty levels a recipe may carry
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONBStringArray source %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Nutrition is the whole-recipe nutritional information
type Nutrition struct {
	Calories float64 `gorm:"not null;default:0" json:"calories"`
	Protein  float64 `gorm:"not null;default:0" json:"protein"`
	Carbs    float64 `gorm:"not null;default:0" json:"carbs"`
	Fat      float64 `gorm:"not null;default:0" json:"fat"`
	Fiber    float64 `gorm:"not null;default:0" json:"fiber"`
	Sugar    float64 `gorm:"not null;default:0" json:"sugar"`
}

type Recipe struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Title               string           `gorm:"size:255;not null" json:"title"`
	Description         string           `gorm:"type:text;not null" json:"description"`
	Image               string           `gorm:"size:512;not null" json:"image"`
	CookTime            int              `gorm:"not null;index" json:"cook_time"`
	Servings            int              `gorm:"not null" json:"servings"`
	Difficulty          string           `gorm:"size:10;not null;index" json:"difficulty"`
	Category            string           `gorm:"size:50;not null;index" json:"category"`
	Ingredients         JSONBStringArray `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions        JSONBStringArray `gorm:"type:jsonb;not null" json:"instructions"`
	Tags                JSONBStringArray `gorm:"type:jsonb;not null" json:"tags"`
	Nutrition           Nutrition        `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null" json:"dietary_restrictions"`
	Rating              float64          `gorm:"not null;default:0" json:"rating"`
	ReviewCount         int              `gorm:"not null;default:0" json:"review_count"`
	AuthorID            *uuid.UUID       `gorm:"type:uuid;index" json:"-"`
	Author              *Author          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Embedding           *pgvector.Vector `gorm:"type:vector(256)" json:"-"`
}

// BeforeCreate assigns an id and normalizes nil arrays
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Tags == nil {
		r.Tags = JSONBStringArray{}
	}
	if r.DietaryRestrictions == nil {
		r.DietaryRestrictions = JSONBStringArray{}
	}
	return nil
}

// IsAuthor reports whether userID wrote the recipe
func (r *Recipe) IsAuthor(userID uuid.UUID) bool {
	return r.AuthorID != nil && *r.AuthorID == userID
}
