package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/manajemen/services"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type LaporanController struct {
	Service *services.LaporanService
}

func NewLaporanController(svc *services.LaporanService) *LaporanController {
	return &LaporanController{Service: svc}
}

// GET /api/laporan/dashboard
func (lc *LaporanController) GetDashboard(c echo.Context) error {
	d, err := lc.Service.Dashboard(c.Request().Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Data dashboard berhasil diambil", d)
}

// GET /api/laporan/kunjungan?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (lc *LaporanController) GetLaporanKunjungan(c echo.Context) error {
	var start, end models.Tanggal
	var err error
	if s := c.QueryParam("startDate"); s != "" {
		if start, err = models.ParseTanggal(s, time.Local); err != nil {
			return utils.BadRequest(c, "Format startDate harus YYYY-MM-DD")
		}
	}
	if s := c.QueryParam("endDate"); s != "" {
		if end, err = models.ParseTanggal(s, time.Local); err != nil {
			return utils.BadRequest(c, "Format endDate harus YYYY-MM-DD")
		}
	}

	lap, err := lc.Service.Kunjungan(c.Request().Context(), start, end)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Laporan kunjungan berhasil diambil", lap)
}

// GET /api/laporan/pasien
func (lc *LaporanController) GetLaporanPasien(c echo.Context) error {
	st, err := lc.Service.Pasien(c.Request().Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Laporan pasien berhasil diambil", map[string]interface{}{"statistik": st})
}

// GET /api/laporan/obat
func (lc *LaporanController) GetLaporanObat(c echo.Context) error {
	lap, err := lc.Service.Obat(c.Request().Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Respond(c, http.StatusOK, "Laporan obat berhasil diambil", lap)
}
