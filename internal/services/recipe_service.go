package services

import (
	"context"

	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/internal/upstream"
)

// RecipeService assembles recipe submissions and forwards recipe CRUD to the
// upstream API. Every operation resolves the session email to an upstream
// account ID first; the upstream owns the authoritative account linkage.
type RecipeService struct {
	upstream *upstream.Client
}

// NewRecipeService creates a new recipe service instance
func NewRecipeService(client *upstream.Client) *RecipeService {
	return &RecipeService{upstream: client}
}

// NormalizeIngredients pairs the parallel name/quantity form inputs into
// ordered ingredient lines. A scalar submission arrives as a one-element
// slice and yields a single line. A missing quantity pairs as "".
func NormalizeIngredients(names, quantities []string) []models.IngredientLine {
	lines := make([]models.IngredientLine, 0, len(names))
	for i, name := range names {
		quantity := ""
		if i < len(quantities) {
			quantity = quantities[i]
		}
		lines = append(lines, models.IngredientLine{Name: name, Quantity: quantity})
	}
	return lines
}

// ListByAccount fetches all recipes belonging to an upstream account ID.
func (s *RecipeService) ListByAccount(ctx context.Context, accountID string) *upstream.RecipeListResult {
	return s.upstream.RecipesByAccount(ctx, accountID)
}

// Get fetches a single recipe for the edit form.
func (s *RecipeService) Get(ctx context.Context, id string) *upstream.RecipeResult {
	return s.upstream.RecipeByID(ctx, id)
}

// Create resolves the author and submits a new recipe. A failed account
// resolution is returned as-is; its envelope carries the reason.
func (s *RecipeService) Create(ctx context.Context, email string, form models.RecipeForm) *upstream.StatusResult {
	account := s.upstream.AccountInfoByEmail(ctx, email)
	if !account.Success {
		return &upstream.StatusResult{Envelope: account.Envelope}
	}

	return s.upstream.CreateRecipe(ctx, models.RecipePayload{
		Name:        form.Title,
		Ingredients: NormalizeIngredients(form.IngredientName, form.IngredientQuantity),
		Note:        form.Note,
		AuthorID:    account.Info.ID,
	})
}

// Update resolves the author and replaces an existing recipe.
func (s *RecipeService) Update(ctx context.Context, email, id string, form models.RecipeForm) *upstream.RecipeResult {
	account := s.upstream.AccountInfoByEmail(ctx, email)
	if !account.Success {
		return &upstream.RecipeResult{Envelope: account.Envelope}
	}

	return s.upstream.UpdateRecipe(ctx, id, models.RecipePayload{
		Name:        form.Title,
		Ingredients: NormalizeIngredients(form.IngredientName, form.IngredientQuantity),
		Note:        form.Note,
		AuthorID:    account.Info.ID,
	})
}

// Delete removes a recipe upstream.
func (s *RecipeService) Delete(ctx context.Context, id string) *upstream.StatusResult {
	return s.upstream.DeleteRecipe(ctx, id)
}
