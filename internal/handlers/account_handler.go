package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipenest/recipenest-web/internal/middleware"
	"github.com/recipenest/recipenest-web/internal/models"
	"github.com/recipenest/recipenest-web/internal/services"
	"github.com/recipenest/recipenest-web/internal/session"
	"github.com/recipenest/recipenest-web/pkg/logger"
	"go.uber.org/zap"
)

// AccountHandler serves the registration, verification, login, OTP, home and
// logout pages.
type AccountHandler struct {
	accounts *services.AccountService
	recipes  *services.RecipeService
	store    *session.Store
	cookie   middleware.CookieConfig
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts *services.AccountService, recipes *services.RecipeService, store *session.Store, cookie middleware.CookieConfig) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		recipes:  recipes,
		store:    store,
		cookie:   cookie,
	}
}

// Landing handles GET /
func (h *AccountHandler) Landing(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	flash, _ := sess.PopFlash(flashError)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Identity": sess.Identity(),
		"Flash":    flash,
	})
}

// ShowRegister handles GET /accounts/register
func (h *AccountHandler) ShowRegister(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}
	if sess.Identity() != "" {
		c.Redirect(http.StatusSeeOther, "/accounts/home")
		return
	}

	flash, _ := sess.PopFlash(flashError)
	c.HTML(http.StatusOK, "register.html", gin.H{"Flash": flash})
}

// SubmitRegister handles POST /accounts/register
func (h *AccountHandler) SubmitRegister(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		sess.PushFlash(flashError, "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/accounts/register")
		return
	}

	res, err := h.accounts.Register(c.Request.Context(), form)
	if err != nil {
		// Local validation failure; the upstream was never called
		sess.PushFlash(flashError, err.Error())
		c.Redirect(http.StatusSeeOther, "/accounts/register")
		return
	}
	if res.Fatal() {
		renderErrorPage(c, "")
		return
	}
	if !res.Success {
		sess.PushFlash(flashError, string(res.Message))
		c.Redirect(http.StatusSeeOther, "/accounts/register")
		return
	}

	c.HTML(http.StatusOK, "verify_pending.html", gin.H{
		"Message": string(res.Message),
	})
}

// Verify handles GET /accounts/verify?token=
func (h *AccountHandler) Verify(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	res := h.accounts.VerifyToken(c.Request.Context(), c.Query("token"))
	if res.Fatal() || !res.Success {
		renderErrorPage(c, string(res.Message))
		return
	}

	sess.PushFlash(flashSuccess, string(res.Message))
	c.Redirect(http.StatusSeeOther, "/accounts/login")
}

// ShowLogin handles GET /accounts/login
func (h *AccountHandler) ShowLogin(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}
	if sess.Identity() != "" {
		c.Redirect(http.StatusSeeOther, "/accounts/home")
		return
	}

	flash, ok := sess.PopFlash(flashError)
	if !ok {
		flash, _ = sess.PopFlash(flashSuccess)
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": flash})
}

// SubmitLogin handles POST /accounts/login
func (h *AccountHandler) SubmitLogin(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		sess.PushFlash(flashError, "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/accounts/login")
		return
	}

	res := h.accounts.Login(c.Request.Context(), form)
	if res.Fatal() {
		renderErrorPage(c, "")
		return
	}
	if !res.Success {
		sess.PushFlash(flashError, string(res.Message))
		c.Redirect(http.StatusSeeOther, "/accounts/login")
		return
	}

	// Password accepted; identity is only granted once the OTP clears.
	// The email rides a flash to the OTP page.
	sess.PushFlash(flashEmail, form.Email)
	c.Redirect(http.StatusSeeOther, "/accounts/otp")
}

// ShowOTP handles GET /accounts/otp
func (h *AccountHandler) ShowOTP(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}
	if sess.Identity() != "" {
		c.Redirect(http.StatusSeeOther, "/accounts/home")
		return
	}

	email, ok := sess.PopFlash(flashEmail)
	if !ok {
		// Arriving here without a fresh login (refresh, bookmark) starts over
		sess.PushFlash(flashError, "Account OTP Error! Please Re-Login!")
		c.Redirect(http.StatusSeeOther, "/accounts/login")
		return
	}

	flash, _ := sess.PopFlash(flashError)
	c.HTML(http.StatusOK, "otp.html", gin.H{
		"Email":       email,
		"MaskedEmail": services.MaskEmail(email),
		"Flash":       flash,
	})
}

// SubmitOTP handles POST /accounts/otp
func (h *AccountHandler) SubmitOTP(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}

	var form models.OTPForm
	if err := c.ShouldBind(&form); err != nil {
		sess.PushFlash(flashError, "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/accounts/login")
		return
	}

	res := h.accounts.SubmitOTP(c.Request.Context(), form)
	if res.Fatal() {
		renderErrorPage(c, "")
		return
	}
	if !res.Success {
		// Re-flash the email so the OTP page can be retried
		sess.PushFlash(flashEmail, form.Email)
		sess.PushFlash(flashError, string(res.Message))
		c.Redirect(http.StatusSeeOther, "/accounts/otp")
		return
	}

	sess.SetIdentity(form.Email)
	logger.Info("account authenticated", zap.String("email", services.MaskEmail(form.Email)))
	c.Redirect(http.StatusSeeOther, "/accounts/home")
}

// Home handles GET /accounts/home
func (h *AccountHandler) Home(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		renderErrorPage(c, "")
		return
	}
	identity := sess.Identity()
	if identity == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ctx := c.Request.Context()
	account := h.accounts.AccountInfo(ctx, identity)
	if !account.Success {
		renderErrorPage(c, string(account.Message))
		return
	}

	list := h.recipes.ListByAccount(ctx, account.Info.ID)
	if !list.Success {
		renderErrorPage(c, string(list.Message))
		return
	}

	flash, ok := sess.PopFlash(flashMessage)
	if !ok {
		flash, _ = sess.PopFlash(flashSuccess)
	}
	c.HTML(http.StatusOK, "account_home.html", gin.H{
		"Title":   services.DisplayName(account.Info),
		"Count":   list.Count,
		"Recipes": list.Recipes,
		"Flash":   flash,
	})
}

// Logout handles GET /accounts/logout
func (h *AccountHandler) Logout(c *gin.Context) {
	if id, err := middleware.GetSessionID(c); err == nil {
		h.store.Delete(id)
	}
	middleware.ClearSessionCookie(c, h.cookie)
	c.Redirect(http.StatusSeeOther, "/")
}
