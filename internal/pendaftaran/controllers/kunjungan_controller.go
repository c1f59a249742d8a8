package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/models"
	pmodels "github.com/c14220110/puskesmas-backend/internal/pendaftaran/models"
	"github.com/c14220110/puskesmas-backend/internal/pendaftaran/services"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type KunjunganController struct {
	Service *services.KunjunganService
}

func NewKunjunganController(service *services.KunjunganService) *KunjunganController {
	return &KunjunganController{Service: service}
}

// GET /api/kunjungan?tanggal=YYYY-MM-DD&status=&idPasien=
func (kc *KunjunganController) ListKunjungan(c echo.Context) error {
	var f models.KunjunganFilter
	if s := c.QueryParam("tanggal"); s != "" {
		tgl, err := models.ParseTanggal(s, time.Local)
		if err != nil {
			return utils.BadRequest(c, "Format tanggal harus YYYY-MM-DD")
		}
		f.Tanggal = tgl
	}
	f.Status = models.StatusKunjungan(c.QueryParam("status"))
	idPasien, err := utils.QueryInt64(c, "idPasien")
	if err != nil {
		return utils.Fail(c, err)
	}
	f.IDPasien = idPasien

	list, err := kc.Service.List(c.Request().Context(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data kunjungan berhasil diambil", list)
}

// GET /api/kunjungan/:id
func (kc *KunjunganController) GetKunjungan(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	k, err := kc.Service.Get(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data kunjungan berhasil diambil", k)
}

// POST /api/kunjungan
func (kc *KunjunganController) CreateKunjungan(c echo.Context) error {
	var req pmodels.KunjunganRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}

	k, err := kc.Service.Create(c.Request().Context(), req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusCreated, "Kunjungan berhasil didaftarkan", k)
}

// PUT /api/kunjungan/:id/status
func (kc *KunjunganController) UpdateStatus(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req pmodels.StatusKunjunganRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}

	k, err := kc.Service.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Status kunjungan berhasil diupdate", k)
}

// POST /api/kunjungan/:id/batal
func (kc *KunjunganController) CancelKunjungan(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	k, err := kc.Service.Cancel(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Kunjungan berhasil dibatalkan", k)
}
