package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	mmodels "github.com/c14220110/puskesmas-backend/internal/manajemen/models"
	"github.com/c14220110/puskesmas-backend/internal/manajemen/services"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

// loginResponse menaruh token dan user di level atas, sama seperti klien lama mengharapkannya.
func loginResponse(c echo.Context, token string, user *models.User) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Login berhasil",
		"token":   token,
		"user":    user,
		"data": map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c echo.Context) error {
	var req mmodels.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	token, user, err := ac.Service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return utils.Fail(c, err)
	}
	return loginResponse(c, token, user)
}

// POST /api/auth/google
func (ac *AuthController) LoginGoogle(c echo.Context) error {
	var req mmodels.GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	token, user, err := ac.Service.LoginGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return utils.Fail(c, err)
	}
	return loginResponse(c, token, user)
}

// GET /api/auth/me
func (ac *AuthController) Me(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	return utils.Respond(c, http.StatusOK, "Data user berhasil diambil", user)
}

// POST /api/auth/logout
// Token tidak disimpan di server, klien cukup membuangnya.
func (ac *AuthController) Logout(c echo.Context) error {
	if user, ok := middlewares.CurrentUser(c); ok {
		ac.Service.Log.Info().Int64("id_user", user.IDUser).Msg("logout")
	}
	return utils.Respond(c, http.StatusOK, "Logout berhasil", nil)
}
