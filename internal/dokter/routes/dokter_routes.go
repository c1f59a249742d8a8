package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/common/rbac"
	"github.com/c14220110/puskesmas-backend/internal/dokter/controllers"
)

func RegisterDokterRoutes(api *echo.Group, rmc *controllers.RekamMedisController, rc *controllers.ResepController) {
	rekamMedis := api.Group("/rekam-medis")
	rekamMedis.GET("/pasien/:pasienId", rmc.ListByPasien, middlewares.Authorize(rbac.RekamMedisRead))
	rekamMedis.GET("/:id", rmc.GetRekamMedis, middlewares.Authorize(rbac.RekamMedisRead))
	rekamMedis.POST("", rmc.CreateRekamMedis, middlewares.Authorize(rbac.RekamMedisWrite))
	rekamMedis.PUT("/:id", rmc.UpdateRekamMedis, middlewares.Authorize(rbac.RekamMedisWrite))

	// baca dan ubah status resep ada di farmasi
	api.POST("/resep", rc.CreateResepHandler, middlewares.Authorize(rbac.ResepCreate))
}
