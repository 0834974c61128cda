package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/usecase/auth"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

func sessionBody(msg string, s *auth.Session) map[string]any {
	return map[string]any{
		"message":      msg,
		"access_token": s.AccessToken,
		"token_type":   "bearer",
		"expires_at":   s.ExpiresAt,
		"user":         s.User,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req auth.RegisterInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	s, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sessionBody("User registered successfully", s))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	s, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sessionBody("Login successful", s))
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req auth.ChangePasswordInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	if err := h.uc.ChangePassword(c.Request().Context(), mw.ApplicantID(c), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AuthHandler) VerifyToken(c echo.Context) error {
	user, err := h.uc.VerifyToken(c.Request().Context(), mw.ApplicantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"valid": true, "user": user})
}
