package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/common/rbac"
	"github.com/c14220110/puskesmas-backend/internal/farmasi/controllers"
)

func RegisterFarmasiRoutes(api *echo.Group, oc *controllers.ObatController, rc *controllers.ResepController) {
	obat := api.Group("/obat")
	obat.GET("", oc.ListObat, middlewares.Authorize(rbac.ObatRead))
	obat.GET("/:id", oc.GetObat, middlewares.Authorize(rbac.ObatRead))
	obat.POST("", oc.CreateObat, middlewares.Authorize(rbac.ObatManage))
	obat.PUT("/:id", oc.UpdateObat, middlewares.Authorize(rbac.ObatManage))
	obat.PUT("/:id/stok", oc.UpdateStok, middlewares.Authorize(rbac.ObatManage))
	obat.GET("/:id/riwayat-stok", oc.RiwayatStok, middlewares.Authorize(rbac.ObatManage))

	// POST /resep didaftarkan oleh modul dokter
	resep := api.Group("/resep")
	resep.GET("", rc.ListResep, middlewares.Authorize(rbac.ResepRead))
	resep.GET("/:id", rc.GetResep, middlewares.Authorize(rbac.ResepRead))
	resep.PUT("/:id/status", rc.UpdateStatus, middlewares.Authorize(rbac.ResepStatus))
}
