package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	fmodels "github.com/c14220110/puskesmas-backend/internal/farmasi/models"
	"github.com/c14220110/puskesmas-backend/internal/farmasi/services"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type ObatController struct {
	Service *services.ObatService
}

func NewObatController(s *services.ObatService) *ObatController {
	return &ObatController{Service: s}
}

// GET /api/obat?search=&stokRendah=true
func (oc *ObatController) ListObat(c echo.Context) error {
	f := models.ObatFilter{
		Search:     c.QueryParam("search"),
		StokRendah: c.QueryParam("stokRendah") == "true",
	}
	list, err := oc.Service.List(c.Request().Context(), f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data obat berhasil diambil", list)
}

// GET /api/obat/:id
func (oc *ObatController) GetObat(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	o, err := oc.Service.Get(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data obat berhasil diambil", o)
}

// POST /api/obat
func (oc *ObatController) CreateObat(c echo.Context) error {
	var req fmodels.ObatRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	o, err := oc.Service.Create(c.Request().Context(), req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusCreated, "Obat berhasil ditambahkan", o)
}

// PUT /api/obat/:id
func (oc *ObatController) UpdateObat(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req fmodels.UpdateObatRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	o, err := oc.Service.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data obat berhasil diupdate", o)
}

// PUT /api/obat/:id/stok
func (oc *ObatController) UpdateStok(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req fmodels.StokRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	if req.Stok == nil {
		return utils.BadRequest(c, "Stok harus diisi")
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	o, err := oc.Service.SetStok(c.Request().Context(), id, *req.Stok, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Stok obat berhasil diupdate", o)
}

// GET /api/obat/:id/riwayat-stok
func (oc *ObatController) RiwayatStok(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	logs, err := oc.Service.RiwayatStok(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Riwayat stok berhasil diambil", logs)
}
