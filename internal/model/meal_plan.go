package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Days and meal times in planner order
var (
	WeekDays  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	MealTimes = []string{"breakfast", "lunch", "dinner"}
)

// WeekLayout is the date format of MealPlan.Week
const WeekLayout = "2006-01-02"

type MealPlan struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_meal_plan_week" json:"user_id"`
	Week      string          `gorm:"size:10;not null;uniqueIndex:idx_meal_plan_week" json:"week"`
	Entries   []MealPlanEntry `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"-"`
}

type MealPlanEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MealPlanID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_slot" json:"meal_plan_id"`
	Day        string    `gorm:"size:10;not null;uniqueIndex:idx_meal_slot" json:"day"`
	MealTime   string    `gorm:"size:10;not null;uniqueIndex:idx_meal_slot" json:"meal_time"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null" json:"recipe_id"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (e *MealPlanEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Meals returns the plan as day -> meal time -> recipe id
func (p *MealPlan) Meals() map[string]map[string]uuid.UUID {
	meals := make(map[string]map[string]uuid.UUID, len(WeekDays))
	for _, day := range WeekDays {
		meals[day] = map[string]uuid.UUID{}
	}
	for _, e := range p.Entries {
		if slots, ok := meals[e.Day]; ok {
			slots[e.MealTime] = e.RecipeID
		}
	}
	return meals
}

// WeekStart returns the Monday of the week containing t, formatted as WeekLayout
func WeekStart(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(WeekLayout)
}

// IsWeekDay reports whether day is one of WeekDays
func IsWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsMealTime reports whether mealTime is one of MealTimes
func IsMealTime(mealTime string) bool {
	for _, m := range MealTimes {
		if m == mealTime {
			return true
		}
	}
	return false
}
