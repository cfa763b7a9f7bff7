package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipenest/recipenest-web/internal/middleware"
	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/internal/services"
)

// RecipeHandler serves the recipe create/edit/delete pages. All of its routes
// sit behind the identity gate; the session email is the only author input.
type RecipeHandler struct {
	recipes  *services.RecipeService
	accounts *services.AccountService
}

// NewRecipeHandler creates a new recipe handler instance
func NewRecipeHandler(recipes *services.RecipeService, accounts *services.AccountService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, accounts: accounts}
}

// ShowCreate handles GET /recipes/create
func (h *RecipeHandler) ShowCreate(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	account := h.accounts.AccountInfo(c.Request.Context(), sess.Identity())
	if !account.Success {
		renderErrorPage(c, string(account.Message))
		return
	}

	flash, _ := sess.PopFlash(flashError)
	c.HTML(http.StatusOK, "recipe_create.html", gin.H{
		"Title": services.DisplayName(account.Info),
		"Flash": flash,
	})
}

// SubmitCreate handles POST /recipes/create
func (h *RecipeHandler) SubmitCreate(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	var form models.RecipeForm
	if err := c.ShouldBind(&form); err != nil {
		sess.PushFlash(flashError, "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/recipes/create")
		return
	}

	res := h.recipes.Create(c.Request.Context(), sess.Identity(), form)
	if !res.Success {
		renderErrorPage(c, string(res.Message))
		return
	}

	sess.PushFlash(flashMessage, string(res.Message))
	c.Redirect(http.StatusSeeOther, "/accounts/home")
}

// ShowEdit handles GET /recipes/edit/:id
func (h *RecipeHandler) ShowEdit(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	recipe := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if !recipe.Success {
		renderErrorPage(c, string(recipe.Message))
		return
	}

	flash, _ := sess.PopFlash(flashError)
	c.HTML(http.StatusOK, "recipe_edit.html", gin.H{
		"Recipe": recipe.Recipe,
		"Flash":  flash,
	})
}

// SubmitEdit handles POST /recipes/edit/:id
func (h *RecipeHandler) SubmitEdit(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	var form models.RecipeForm
	if err := c.ShouldBind(&form); err != nil {
		sess.PushFlash(flashError, "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/recipes/edit/"+c.Param("id"))
		return
	}

	res := h.recipes.Update(c.Request.Context(), sess.Identity(), c.Param("id"), form)
	if !res.Success {
		renderErrorPage(c, string(res.Message))
		return
	}

	sess.PushFlash(flashMessage, "Recipe called: "+res.Recipe.Name+" is Updated!")
	c.Redirect(http.StatusSeeOther, "/accounts/home")
}

// Delete handles GET /recipes/delete/:id. The link on the home page is a
// plain anchor, so this is a GET that answers with a real redirect back home.
func (h *RecipeHandler) Delete(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	res := h.recipes.Delete(c.Request.Context(), c.Param("id"))
	if !res.Success {
		renderErrorPage(c, string(res.Message))
		return
	}

	sess.PushFlash(flashMessage, string(res.Message))
	c.Redirect(http.StatusSeeOther, "/accounts/home")
}
