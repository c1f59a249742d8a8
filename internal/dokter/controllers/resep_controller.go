package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/dokter/models"
	"github.com/c14220110/puskesmas-backend/internal/dokter/services"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type ResepController struct{ Service *services.ResepService }

func NewResepController(s *services.ResepService) *ResepController {
	return &ResepController{Service: s}
}

// POST /api/resep
func (rc *ResepController) CreateResepHandler(c echo.Context) error {
	var req models.ResepRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}

	// --- dokter penulis diambil dari user yang login ---
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Invalid or missing token claims", nil)
	}

	resep, err := rc.Service.CreateResep(c.Request().Context(), req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusCreated, "Resep berhasil dibuat", resep)
}
