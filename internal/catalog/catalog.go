// Package catalog holds the browse facets and starter recipes shipped with Recipe Realm.
package catalog

import (
	"github.com/pageza/recipe-realm/backend/internal/model"
)

// AllOption disables a category or difficulty filter
const AllOption = "All"

var (
	Categories     = []string{AllOption, "Pasta", "Dessert", "Breakfast", "Asian", "Salad"}
	Difficulties   = []string{AllOption, model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	DietaryOptions = []string{"vegetarian", "vegan", "gluten-free", "gluten-free-option", "keto-friendly", "dairy-free", "nut-free"}
)

// SeedRecipe is a starter recipe with the display name of its author
type SeedRecipe struct {
	Author string
	Recipe model.Recipe
}

// Recipes returns fresh copies of the starter recipes
func Recipes() []SeedRecipe {
	return []SeedRecipe{
		{
			Author: "Chef Marco",
			Recipe: model.Recipe{
				Title:       "Creamy Basil Pasta",
				Description: "A delicious pasta dish with fresh basil, cherry tomatoes, and creamy sauce",
				Image:       "/assets/pasta-dish.jpg",
				CookTime:    25,
				Servings:    4,
				Difficulty:  model.DifficultyEasy,
				Category:    "Pasta",
				Ingredients: model.JSONBStringArray{
					"400g pasta",
					"200ml heavy cream",
					"2 cloves garlic",
					"200g cherry tomatoes",
					"Fresh basil leaves",
					"Parmesan cheese",
					"Salt and pepper",
				},
				Instructions: model.JSONBStringArray{
					"Cook pasta according to package instructions",
					"Heat cream in a large pan",
					"Add garlic and cherry tomatoes",
					"Toss with cooked pasta",
					"Add fresh basil and parmesan",
					"Season with salt and pepper",
				},
				Tags:                model.JSONBStringArray{"vegetarian", "creamy", "italian"},
				Nutrition:           model.Nutrition{Calories: 520, Protein: 18, Carbs: 65, Fat: 22, Fiber: 3, Sugar: 8},
				DietaryRestrictions: model.JSONBStringArray{"vegetarian"},
			},
		},
		{
			Author: "Chef Amelie",
			Recipe: model.Recipe{
				Title:       "Molten Chocolate Cake",
				Description: "Rich chocolate cake with a gooey center, ready in under an hour",
				Image:       "/assets/chocolate-cake.jpg",
				CookTime:    45,
				Servings:    8,
				Difficulty:  model.DifficultyMedium,
				Category:    "Dessert",
				Ingredients: model.JSONBStringArray{
					"200g dark chocolate",
					"150g butter",
					"3 eggs",
					"100g sugar",
					"50g flour",
				},
				Instructions: model.JSONBStringArray{
					"Melt chocolate and butter together",
					"Whisk eggs and sugar until pale",
					"Combine chocolate with the egg mixture and fold in flour",
					"Bake at 200C for 12 minutes",
				},
				Tags:                model.JSONBStringArray{"chocolate", "sweet", "baking"},
				Nutrition:           model.Nutrition{Calories: 3200, Protein: 40, Carbs: 280, Fat: 210, Fiber: 16, Sugar: 220},
				DietaryRestrictions: model.JSONBStringArray{"vegetarian", "nut-free"},
			},
		},
		{
			Author: "Chef Lena",
			Recipe: model.Recipe{
				Title:       "Avocado Toast",
				Description: "Crispy sourdough topped with smashed avocado, lime and chili flakes",
				Image:       "/assets/avocado-toast.jpg",
				CookTime:    10,
				Servings:    2,
				Difficulty:  model.DifficultyEasy,
				Category:    "Breakfast",
				Ingredients: model.JSONBStringArray{
					"2 slices sourdough bread",
					"1 ripe avocado",
					"1 lime",
					"1 pinch chili flakes",
				},
				Instructions: model.JSONBStringArray{
					"Toast the bread until golden",
					"Mash avocado with lime juice",
					"Spread on toast and slice in half",
				},
				Tags:                model.JSONBStringArray{"quick", "healthy", "vegan"},
				Nutrition:           model.Nutrition{Calories: 620, Protein: 14, Carbs: 64, Fat: 34, Fiber: 18, Sugar: 4},
				DietaryRestrictions: model.JSONBStringArray{"vegan", "dairy-free", "nut-free"},
			},
		},
		{
			Author: "Chef Kenji",
			Recipe: model.Recipe{
				Title:       "Chicken Vegetable Stir Fry",
				Description: "Tender chicken and crunchy vegetables tossed in a ginger soy glaze",
				Image:       "/assets/stir-fry.jpg",
				CookTime:    30,
				Servings:    4,
				Difficulty:  model.DifficultyMedium,
				Category:    "Asian",
				Ingredients: model.JSONBStringArray{
					"500g chicken breast",
					"2 bell peppers",
					"1 onion",
					"3 tbsp soy sauce",
					"1 tbsp ginger",
					"300g rice",
				},
				Instructions: model.JSONBStringArray{
					"Chop the chicken and vegetables",
					"Heat oil in a wok and fry the chicken",
					"Add vegetables and stir fry until tender",
					"Mix in soy sauce and ginger",
					"Serve over cooked rice",
				},
				Tags:                model.JSONBStringArray{"high-protein", "quick", "asian"},
				Nutrition:           model.Nutrition{Calories: 1960, Protein: 150, Carbs: 240, Fat: 36, Fiber: 12, Sugar: 20},
				DietaryRestrictions: model.JSONBStringArray{"dairy-free", "nut-free"},
			},
		},
		{
			Author: "Chef Sofia",
			Recipe: model.Recipe{
				Title:       "Fresh Garden Salad",
				Description: "Crisp lettuce, tomatoes and cucumber with a lemon olive oil dressing",
				Image:       "/assets/fresh-salad.jpg",
				CookTime:    15,
				Servings:    2,
				Difficulty:  model.DifficultyEasy,
				Category:    "Salad",
				Ingredients: model.JSONBStringArray{
					"1 head lettuce",
					"2 tomatoes",
					"1 cucumber",
					"2 tbsp olive oil",
					"1 lemon",
				},
				Instructions: model.JSONBStringArray{
					"Slice the cucumber and tomatoes",
					"Chop the lettuce",
					"Combine with olive oil and lemon juice",
				},
				Tags:                model.JSONBStringArray{"fresh", "healthy", "vegan"},
				Nutrition:           model.Nutrition{Calories: 380, Protein: 6, Carbs: 24, Fat: 30, Fiber: 8, Sugar: 12},
				DietaryRestrictions: model.JSONBStringArray{"vegan", "gluten-free", "keto-friendly", "dairy-free"},
			},
		},
	}
}
