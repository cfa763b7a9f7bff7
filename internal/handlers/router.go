package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/recipenest/recipenest-web/internal/middleware"
)

// RegisterRoutes wires the HTML surface onto the router. limit, when non-nil,
// is applied to the browser-facing GET routes a visitor can hammer; form
// POSTs stay unlimited so a slow typist never loses a submission.
func RegisterRoutes(r *gin.Engine, ah *AccountHandler, rh *RecipeHandler, limit gin.HandlerFunc) {
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if limit == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{limit, h}
	}

	r.GET("/", limited(ah.Landing)...)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/register", limited(ah.ShowRegister)...)
		accounts.POST("/register", ah.SubmitRegister)
		accounts.GET("/verify", ah.Verify)
		accounts.GET("/login", limited(ah.ShowLogin)...)
		accounts.POST("/login", ah.SubmitLogin)
		accounts.GET("/otp", limited(ah.ShowOTP)...)
		accounts.POST("/otp", ah.SubmitOTP)
		accounts.GET("/home", limited(ah.Home)...)
		accounts.GET("/logout", ah.Logout)
	}

	recipes := r.Group("/recipes", middleware.RequireIdentity("/"))
	{
		recipes.GET("/create", limited(rh.ShowCreate)...)
		recipes.POST("/create", rh.SubmitCreate)
		recipes.GET("/edit/:id", limited(rh.ShowEdit)...)
		recipes.POST("/edit/:id", rh.SubmitEdit)
		recipes.GET("/delete/:id", rh.Delete)
	}

	r.NoRoute(NotFound)
}
