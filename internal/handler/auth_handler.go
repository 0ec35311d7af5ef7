package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"neotech/internal/auth"
	apperrors "neotech/internal/errors"
	"neotech/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.Sessions
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// FormResponse carries the CSRF token a client must echo back when posting the form.
type FormResponse struct {
	Form      string `json:"form"`
	CSRFToken string `json:"csrf_token,omitempty"`
}

func formResponse(c echo.Context, form string) error {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return c.JSON(http.StatusOK, FormResponse{Form: form, CSRFToken: token})
}

// RegisterForm godoc
// @Summary Registration form
// @Tags auth
// @Produce json
// @Success 200 {object} FormResponse
// @Router /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return formResponse(c, "register")
}

// LoginForm godoc
// @Summary Login form
// @Tags auth
// @Produce json
// @Success 200 {object} FormResponse
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return formResponse(c, "login")
}

// Register godoc
// @Summary Register a new customer and sign in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 303 "Redirect to /"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Email and password required")
	}

	principal, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "Email already used",
				Code:  "EMAIL_IN_USE",
			})
		case errors.Is(err, service.ErrMissingCredentials):
			return badRequest("Email and password required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		}).SetInternal(err)
	}

	if err := h.sessions.SignIn(c, principal); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 303 "Redirect to /"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("Email and password required")
	}

	principal, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "Invalid credentials",
				Code:  "INVALID_CREDENTIALS",
			})
		}
		if errors.Is(err, service.ErrMissingCredentials) {
			return badRequest("Email and password required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		}).SetInternal(err)
	}

	if err := h.sessions.SignIn(c, principal); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Success 303 "Redirect to /"
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
