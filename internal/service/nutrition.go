package service

import (
	"github.com/pageza/recipe-realm/backend/internal/model"
)

// Calories per gram of each macronutrient
const (
	proteinKcalPerGram = 4
	carbsKcalPerGram   = 4
	fatKcalPerGram     = 9
)

type PerServing struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
	Sugar    int `json:"sugar"`
}

type MacroShare struct {
	Name     string  `json:"name"`
	Grams    int     `json:"grams"`
	Calories int     `json:"calories"`
	Percent  float64 `json:"percent"`
}

type NutritionBreakdown struct {
	RecipeID   string          `json:"recipe_id"`
	Servings   int             `json:"servings"`
	Total      model.Nutrition `json:"total"`
	PerServing PerServing      `json:"per_serving"`
	Macros     []MacroShare    `json:"macros"`
}

// BreakdownNutrition splits a recipe's nutrition per serving and reports
// the share of calories coming from each macronutrient.
func BreakdownNutrition(r *model.Recipe) *NutritionBreakdown {
	servings := r.Servings
	if servings < 1 {
		servings = 1
	}
	per := func(v float64) int {
		return roundHalfUp(v / float64(servings))
	}
	n := r.Nutrition
	ps := PerServing{
		Calories: per(n.Calories),
		Protein:  per(n.Protein),
		Carbs:    per(n.Carbs),
		Fat:      per(n.Fat),
		Fiber:    per(n.Fiber),
		Sugar:    per(n.Sugar),
	}

	macros := []MacroShare{
		{Name: "Protein", Grams: ps.Protein, Calories: ps.Protein * proteinKcalPerGram},
		{Name: "Carbs", Grams: ps.Carbs, Calories: ps.Carbs * carbsKcalPerGram},
		{Name: "Fat", Grams: ps.Fat, Calories: ps.Fat * fatKcalPerGram},
	}
	total := 0
	for _, m := range macros {
		total += m.Calories
	}
	if total > 0 {
		for i := range macros {
			macros[i].Percent = float64(roundHalfUp(float64(macros[i].Calories)*1000/float64(total))) / 10
		}
	}

	return &NutritionBreakdown{
		RecipeID:   r.ID.String(),
		Servings:   servings,
		Total:      n,
		PerServing: ps,
		Macros:     macros,
	}
}
