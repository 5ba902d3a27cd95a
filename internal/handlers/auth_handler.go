package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
	"github.com/sjperalta/billing-api/internal/session"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "billing-api",
		"version": "1.0.0",
	})
}

type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
}

func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Description Authenticates a user and sets the user_id and user_role session cookies
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindBody(c, "user", &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	h.setCookie(c, session.UserCookie, result.Session.User, maxAge)
	h.setCookie(c, session.RoleCookie, result.Session.Role, maxAge)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"user":      result.User,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

// @Summary Signup
// @Description Registers a CLIENT account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body services.SignupInput true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupInput
	if !bindBody(c, "user", &req) {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user.ToResponse()})
}

// @Summary Logout
// @Description Clears the session cookies
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, session.UserCookie, "", -1)
	h.setCookie(c, session.RoleCookie, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary Current user
// @Description Returns the account behind the session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookies, true)
}
