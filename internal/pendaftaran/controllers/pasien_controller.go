package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/models"
	pmodels "github.com/c14220110/puskesmas-backend/internal/pendaftaran/models"
	"github.com/c14220110/puskesmas-backend/internal/pendaftaran/services"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type PasienController struct {
	Service *services.PasienService
}

func NewPasienController(service *services.PasienService) *PasienController {
	return &PasienController{Service: service}
}

// GET /api/pasien?search=&statusPembayaran=
func (pc *PasienController) ListPasien(c echo.Context) error {
	f := models.PasienFilter{
		Search:           c.QueryParam("search"),
		StatusPembayaran: models.StatusPembayaranPasien(c.QueryParam("statusPembayaran")),
	}
	list, err := pc.Service.List(c.Request().Context(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data pasien berhasil diambil", list)
}

// GET /api/pasien/:id
func (pc *PasienController) GetPasien(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	p, err := pc.Service.Get(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data pasien berhasil diambil", p)
}

// POST /api/pasien
func (pc *PasienController) CreatePasien(c echo.Context) error {
	var req pmodels.PasienRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}

	p, err := pc.Service.Create(c.Request().Context(), req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusCreated, "Pasien berhasil didaftarkan", p)
}

// PUT /api/pasien/:id
func (pc *PasienController) UpdatePasien(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req pmodels.UpdatePasienRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}

	p, err := pc.Service.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data pasien berhasil diupdate", p)
}
