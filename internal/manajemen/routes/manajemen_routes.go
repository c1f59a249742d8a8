package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/common/rbac"
	"github.com/c14220110/puskesmas-backend/internal/manajemen/controllers"
)

// RegisterAuthRoutes: login tidak dilindungi JWT, me dan logout dilindungi.
func RegisterAuthRoutes(public *echo.Group, api *echo.Group, ac *controllers.AuthController) {
	public.POST("/auth/login", ac.Login)
	public.POST("/auth/google", ac.LoginGoogle)

	api.GET("/auth/me", ac.Me)
	api.POST("/auth/logout", ac.Logout)
}

func RegisterLaporanRoutes(api *echo.Group, lc *controllers.LaporanController) {
	laporan := api.Group("/laporan")
	laporan.GET("/dashboard", lc.GetDashboard, middlewares.Authorize(rbac.LaporanDashboard))
	laporan.GET("/kunjungan", lc.GetLaporanKunjungan, middlewares.Authorize(rbac.LaporanKunjungan))
	laporan.GET("/pasien", lc.GetLaporanPasien, middlewares.Authorize(rbac.LaporanKunjungan))
	laporan.GET("/obat", lc.GetLaporanObat, middlewares.Authorize(rbac.LaporanObat))
}
