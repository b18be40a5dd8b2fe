package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
)

// Grocery categories in the order they are checked
const (
	GroceryMeatSeafood = "Meat & Seafood"
	GroceryDairy       = "Dairy"
	GroceryFruits      = "Fruits"
	GroceryVegetables  = "Vegetables"
	GroceryGrains      = "Grains & Bread"
	GroceryOther       = "Other"
)

var groceryKeywords = []struct {
	category string
	keywords []string
}{
	{GroceryMeatSeafood, []string{"meat", "chicken", "beef", "fish"}},
	{GroceryDairy, []string{"milk", "cheese", "butter", "cream"}},
	{GroceryFruits, []string{"apple", "banana", "berry", "fruit"}},
	{GroceryVegetables, []string{"lettuce", "tomato", "onion", "vegetable"}},
	{GroceryGrains, []string{"bread", "pasta", "rice", "flour"}},
}

// CategorizeIngredient assigns an ingredient name to a grocery aisle by keyword
func CategorizeIngredient(name string) string {
	lower := strings.ToLower(name)
	for _, group := range groceryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return GroceryOther
}

// SplitIngredient splits "400g pasta" into quantity "400g" and name "pasta".
// An ingredient without a space is all name.
func SplitIngredient(ingredient string) (quantity, name string) {
	ingredient = strings.TrimSpace(ingredient)
	if i := strings.Index(ingredient, " "); i >= 0 {
		return ingredient[:i], strings.TrimSpace(ingredient[i+1:])
	}
	return "", ingredient
}

// BuildGroceryItems aggregates the ingredients of every planned meal.
// Slots are visited Monday..Sunday, breakfast..dinner; repeated names
// join their quantities with " + " in the order they were met.
func BuildGroceryItems(plan *model.MealPlan, recipes map[uuid.UUID]*model.Recipe) model.GroceryItems {
	meals := plan.Meals()

	type entry struct {
		quantity string
		category string
	}
	byName := make(map[string]*entry)
	var order []string

	for _, day := range model.WeekDays {
		for _, mealTime := range model.MealTimes {
			recipeID, ok := meals[day][mealTime]
			if !ok {
				continue
			}
			recipe, ok := recipes[recipeID]
			if !ok {
				continue
			}
			for _, ingredient := range recipe.Ingredients {
				quantity, name := SplitIngredient(ingredient)
				if name == "" {
					continue
				}
				if e, seen := byName[name]; seen {
					e.quantity = e.quantity + " + " + quantity
					continue
				}
				byName[name] = &entry{quantity: quantity, category: CategorizeIngredient(name)}
				order = append(order, name)
			}
		}
	}

	items := make(model.GroceryItems, 0, len(order))
	for i, name := range order {
		e := byName[name]
		items = append(items, model.GroceryItem{
			ID:       fmt.Sprintf("item-%d", i),
			Name:     name,
			Quantity: e.quantity,
			Category: e.category,
		})
	}
	return items
}
