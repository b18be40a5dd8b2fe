package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroceryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
}

// GroceryItems is stored as a JSON document on the list row
type GroceryItems []GroceryItem

func (g GroceryItems) Value() (driver.Value, error) {
	if len(g) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (g *GroceryItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*g = GroceryItems{}
		return nil
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("unsupported GroceryItems source %T", value)
	}
}

type GroceryList struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	MealPlanID uuid.UUID    `gorm:"type:uuid;not null;index" json:"meal_plan_id"`
	Items      GroceryItems `gorm:"type:jsonb;not null" json:"items"`
	Completed  bool         `gorm:"not null;default:false" json:"completed"`
}

func (l *GroceryList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ByCategory groups the items by category keeping their order
func (l *GroceryList) ByCategory() map[string][]GroceryItem {
	grouped := make(map[string][]GroceryItem)
	for _, item := range l.Items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
