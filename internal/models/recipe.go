package models

import "time"

// IngredientLine is one ingredient entry of a recipe. Lines are assembled from
// the parallel name/quantity inputs of the recipe forms and their order is
// preserved end-to-end.
type IngredientLine struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe is the recipe record owned by the upstream API.
type Recipe struct {
	ID          string           `json:"_id"`
	Name        string           `json:"recipeName"`
	CreatedAt   time.Time        `json:"createdAt"`
	Ingredients []IngredientLine `json:"ingredientsList"`
	Note        string           `json:"recipeNote"`
}

// RecipePayload is the body of recipe create/edit calls to the upstream API.
type RecipePayload struct {
	Name        string           `json:"recipeName"`
	Ingredients []IngredientLine `json:"ingredientsList"`
	Note        string           `json:"recipeNote"`
	AuthorID    string           `json:"recipeAuthor"`
}
