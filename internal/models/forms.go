package models

// Form-binding types for the HTML surface. Validation beyond the local checks
// named in the handlers belongs to the upstream API, so most fields bind
// without constraints.

// RegisterForm binds the registration form submission.
type RegisterForm struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
	Terms     string `form:"terms"`
}

// LoginForm binds the login form submission.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// OTPForm binds the OTP form submission. The email travels in a hidden field
// so a failed code can be retried without a fresh login.
type OTPForm struct {
	OTP   string `form:"otp"`
	Email string `form:"email"`
}

// RecipeForm binds the recipe create/edit form submissions. Ingredient inputs
// arrive as parallel arrays, or as single scalars for one-line recipes.
type RecipeForm struct {
	Title              string   `form:"recipeTitle"`
	IngredientName     []string `form:"ingredientName"`
	IngredientQuantity []string `form:"ingredientQuantity"`
	Note               string   `form:"recipeNote"`
}
