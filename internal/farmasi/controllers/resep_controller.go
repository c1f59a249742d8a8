package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	fmodels "github.com/c14220110/puskesmas-backend/internal/farmasi/models"
	"github.com/c14220110/puskesmas-backend/internal/farmasi/services"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type ResepController struct {
	Service *services.ResepService
}

func NewResepController(s *services.ResepService) *ResepController {
	return &ResepController{Service: s}
}

// GET /api/resep?status=&tanggal=YYYY-MM-DD
func (rc *ResepController) ListResep(c echo.Context) error {
	f := models.ResepFilter{Status: models.StatusResep(c.QueryParam("status"))}
	if s := c.QueryParam("tanggal"); s != "" {
		tgl, err := models.ParseTanggal(s, time.Local)
		if err != nil {
			return utils.BadRequest(c, "Format tanggal harus YYYY-MM-DD")
		}
		f.Tanggal = tgl
	}
	list, err := rc.Service.List(c.Request().Context(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data resep berhasil diambil", list)
}

// GET /api/resep/:id
func (rc *ResepController) GetResep(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	r, err := rc.Service.Get(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data resep berhasil diambil", r)
}

// PUT /api/resep/:id/status
func (rc *ResepController) UpdateStatus(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req fmodels.StatusResepRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}

	r, err := rc.Service.UpdateStatus(c.Request().Context(), id, req.Status, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Status resep berhasil diupdate", r)
}
