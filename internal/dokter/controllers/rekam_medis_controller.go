package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/dokter/models"
	"github.com/c14220110/puskesmas-backend/internal/dokter/services"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type RekamMedisController struct {
	Service *services.RekamMedisService
}

func NewRekamMedisController(s *services.RekamMedisService) *RekamMedisController {
	return &RekamMedisController{Service: s}
}

// GET /api/rekam-medis/pasien/:pasienId
func (rc *RekamMedisController) ListByPasien(c echo.Context) error {
	idPasien, err := utils.ParamID(c, "pasienId")
	if err != nil {
		return utils.Fail(c, err)
	}
	list, err := rc.Service.ListByPasien(c.Request().Context(), idPasien)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data rekam medis berhasil diambil", list)
}

// GET /api/rekam-medis/:id
func (rc *RekamMedisController) GetRekamMedis(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	rm, err := rc.Service.Get(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data rekam medis berhasil diambil", rm)
}

// POST /api/rekam-medis
func (rc *RekamMedisController) CreateRekamMedis(c echo.Context) error {
	var req models.RekamMedisRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}

	rm, err := rc.Service.Create(c.Request().Context(), req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusCreated, "Rekam medis berhasil dibuat", rm)
}

// PUT /api/rekam-medis/:id
func (rc *RekamMedisController) UpdateRekamMedis(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req models.UpdateRekamMedisRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}

	rm, err := rc.Service.Update(c.Request().Context(), id, req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Rekam medis berhasil diupdate", rm)
}
