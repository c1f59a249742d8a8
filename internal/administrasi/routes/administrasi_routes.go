package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/administrasi/controllers"
	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/common/rbac"
)

// RegisterTransaksiRoutes mendaftarkan endpoint kasir dan verifikasi pembayaran.
func RegisterTransaksiRoutes(api *echo.Group, tc *controllers.TransaksiController) {
	trx := api.Group("/transaksi")
	trx.GET("", tc.ListTransaksi, middlewares.Authorize(rbac.TransaksiRead))
	trx.GET("/biaya/:idKunjungan", tc.GetBiaya, middlewares.Authorize(rbac.TransaksiRead))
	trx.GET("/:id", tc.GetTransaksi, middlewares.Authorize(rbac.TransaksiRead))
	trx.POST("", tc.CreateTransaksi, middlewares.Authorize(rbac.TransaksiCreate))
	trx.PATCH("/:id/verifikasi", tc.VerifikasiTransaksi, middlewares.Authorize(rbac.TransaksiVerify))
	trx.PUT("/:id", tc.UpdateTransaksi, middlewares.Authorize(rbac.TransaksiAdmin))
	trx.DELETE("/:id", tc.DeleteTransaksi, middlewares.Authorize(rbac.TransaksiAdmin))
}
