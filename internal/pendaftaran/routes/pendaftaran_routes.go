package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/common/rbac"
	"github.com/c14220110/puskesmas-backend/internal/pendaftaran/controllers"
)

// RegisterPendaftaranRoutes memasang endpoint pasien dan kunjungan pada grup
// yang sudah dilindungi JWTMiddleware.
func RegisterPendaftaranRoutes(api *echo.Group, pc *controllers.PasienController, kc *controllers.KunjunganController) {
	pasien := api.Group("/pasien")
	pasien.GET("", pc.ListPasien, middlewares.Authorize(rbac.PasienRead))
	pasien.GET("/:id", pc.GetPasien, middlewares.Authorize(rbac.PasienRead))
	pasien.POST("", pc.CreatePasien, middlewares.Authorize(rbac.PasienWrite))
	pasien.PUT("/:id", pc.UpdatePasien, middlewares.Authorize(rbac.PasienWrite))

	kunjungan := api.Group("/kunjungan")
	kunjungan.GET("", kc.ListKunjungan, middlewares.Authorize(rbac.KunjunganRead))
	kunjungan.GET("/:id", kc.GetKunjungan, middlewares.Authorize(rbac.KunjunganRead))
	kunjungan.POST("", kc.CreateKunjungan, middlewares.Authorize(rbac.KunjunganCreate))
	kunjungan.PUT("/:id/status", kc.UpdateStatus, middlewares.Authorize(rbac.KunjunganStatus))
	kunjungan.POST("/:id/batal", kc.CancelKunjungan, middlewares.Authorize(rbac.KunjunganStatus))
}
