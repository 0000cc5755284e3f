package v1

import (
	"net/http"
	"time"

	"job-tracker-backend/config"
	"job-tracker-backend/internal/authz"
	"job-tracker-backend/internal/delivery/http/middleware"
	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userUC domain.UserUsecase
	tokens *auth.TokenService
	secure bool
}

func NewAuthHandler(public, protected *gin.RouterGroup, authLimit gin.HandlerFunc, userUC domain.UserUsecase, tokens *auth.TokenService, cfg *config.Config) {
	handler := &AuthHandler{userUC: userUC, tokens: tokens, secure: cfg.CookieSecure}

	authGroup := public.Group("/auth")
	authGroup.Use(authLimit)
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", handler.Me)

	users := protected.Group("/users")
	{
		users.GET("", handler.List)
		users.PUT("/me", handler.UpdateMe)
		users.DELETE("/me", handler.DeleteMe)
	}
}

type LoginResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterInput  true  "Account"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	user, err := h.userUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginInput  true  "Credentials"
// @Success      200          {object}  response.Response{data=LoginResponse}
// @Failure      401          {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	user, err := h.userUC.Authenticate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secure, true)

	response.Success(c, http.StatusOK, "Login successful", LoginResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Logout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secure, true)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := authz.Actor(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

func (h *AuthHandler) List(c *gin.Context) {
	users, err := h.userUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// UpdateMe godoc
// @Summary      Update own account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        patch  body      domain.UserPatch  true  "Fields to change"
// @Success      200    {object}  response.Response{data=domain.User}
// @Failure      409    {object}  response.Response
// @Router       /users/me [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	id, err := authz.Actor(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	user, err := h.userUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

// DeleteMe godoc
// @Summary      Delete own account and all its data
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /users/me [delete]
// @Security     BearerAuth
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	id, err := authz.Actor(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.userUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secure, true)
	response.Success(c, http.StatusOK, "User deleted", nil)
}
