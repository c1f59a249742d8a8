package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	amodels "github.com/c14220110/puskesmas-backend/internal/administrasi/models"
	"github.com/c14220110/puskesmas-backend/internal/administrasi/services"
	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

// TransaksiController menangani pembayaran kunjungan.
type TransaksiController struct {
	Service *services.TransaksiService
}

func NewTransaksiController(service *services.TransaksiService) *TransaksiController {
	return &TransaksiController{Service: service}
}

// GET /api/transaksi?statusVerifikasi=
func (tc *TransaksiController) ListTransaksi(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	f := models.TransaksiFilter{StatusVerifikasi: models.StatusVerifikasi(c.QueryParam("statusVerifikasi"))}
	list, err := tc.Service.List(c.Request().Context(), f, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data transaksi berhasil diambil", list)
}

// GET /api/transaksi/:id
func (tc *TransaksiController) GetTransaksi(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	t, err := tc.Service.Get(c.Request().Context(), id, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data transaksi berhasil diambil", t)
}

// GET /api/transaksi/biaya/:idKunjungan
func (tc *TransaksiController) GetBiaya(c echo.Context) error {
	id, err := utils.ParamID(c, "idKunjungan")
	if err != nil {
		return utils.Fail(c, err)
	}
	b, err := tc.Service.Biaya(c.Request().Context(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Rincian biaya berhasil dihitung", b)
}

// POST /api/transaksi
func (tc *TransaksiController) CreateTransaksi(c echo.Context) error {
	var req amodels.TransaksiRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	t, err := tc.Service.Create(c.Request().Context(), req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusCreated, "Transaksi berhasil dibuat", t)
}

// PATCH /api/transaksi/:id/verifikasi
func (tc *TransaksiController) VerifikasiTransaksi(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req amodels.VerifikasiRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
	}
	t, err := tc.Service.Verify(c.Request().Context(), id, req, user)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Transaksi berhasil diverifikasi", t)
}

// PUT /api/transaksi/:id
func (tc *TransaksiController) UpdateTransaksi(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req amodels.UpdateTransaksiRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	t, err := tc.Service.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Transaksi berhasil diupdate", t)
}

// DELETE /api/transaksi/:id
func (tc *TransaksiController) DeleteTransaksi(c echo.Context) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := tc.Service.Delete(c.Request().Context(), id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Transaksi berhasil dihapus", nil)
}
