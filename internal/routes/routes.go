package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/config"
	adminControllers "github.com/c14220110/puskesmas-backend/internal/administrasi/controllers"
	adminRoutes "github.com/c14220110/puskesmas-backend/internal/administrasi/routes"
	adminServices "github.com/c14220110/puskesmas-backend/internal/administrasi/services"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	dokterControllers "github.com/c14220110/puskesmas-backend/internal/dokter/controllers"
	dokterRoutes "github.com/c14220110/puskesmas-backend/internal/dokter/routes"
	dokterServices "github.com/c14220110/puskesmas-backend/internal/dokter/services"
	farmasiControllers "github.com/c14220110/puskesmas-backend/internal/farmasi/controllers"
	farmasiRoutes "github.com/c14220110/puskesmas-backend/internal/farmasi/routes"
	farmasiServices "github.com/c14220110/puskesmas-backend/internal/farmasi/services"
	manajemenControllers "github.com/c14220110/puskesmas-backend/internal/manajemen/controllers"
	manajemenRoutes "github.com/c14220110/puskesmas-backend/internal/manajemen/routes"
	manajemenServices "github.com/c14220110/puskesmas-backend/internal/manajemen/services"
	pendaftaranControllers "github.com/c14220110/puskesmas-backend/internal/pendaftaran/controllers"
	pendaftaranRoutes "github.com/c14220110/puskesmas-backend/internal/pendaftaran/routes"
	pendaftaranServices "github.com/c14220110/puskesmas-backend/internal/pendaftaran/services"
	"github.com/c14220110/puskesmas-backend/pkg/storage/mariadb"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
	"github.com/c14220110/puskesmas-backend/ws"
)

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, db *sql.DB, cfg *config.Config, hub *ws.Hub, m *metrics.Metrics, logger zerolog.Logger) {
	now := time.Now

	// Repository
	userRepo := mariadb.NewUserRepository(db)
	pasienRepo := mariadb.NewPasienRepository(db)
	kunjunganRepo := mariadb.NewKunjunganRepository(db)
	rekamMedisRepo := mariadb.NewRekamMedisRepository(db)
	resepRepo := mariadb.NewResepRepository(db)
	obatRepo := mariadb.NewObatRepository(db)
	transaksiRepo := mariadb.NewTransaksiRepository(db)
	laporanRepo := mariadb.NewLaporanRepository(db)
	tx := mariadb.NewTxRunner(db)

	jm := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	google := utils.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleCertsURL)

	// Service
	pasienService := pendaftaranServices.NewPasienService(pasienRepo, kunjunganRepo, tx, now, logger)
	kunjunganService := pendaftaranServices.NewKunjunganService(kunjunganRepo, pasienRepo, tx, hub, m, now, logger)
	rekamMedisService := dokterServices.NewRekamMedisService(rekamMedisRepo, kunjunganRepo, tx, hub, m, logger)
	resepDokterService := dokterServices.NewResepService(resepRepo, obatRepo, rekamMedisRepo, tx, m, now, logger)
	obatService := farmasiServices.NewObatService(obatRepo, tx, logger)
	resepFarmasiService := farmasiServices.NewResepService(resepRepo, obatRepo, kunjunganRepo, tx, hub, m, now, logger)
	transaksiService := adminServices.NewTransaksiService(transaksiRepo, kunjunganRepo, pasienRepo, resepRepo, tx,
		adminServices.Tarif{Pendaftaran: cfg.TarifPendaftaran, Pemeriksaan: cfg.TarifPemeriksaan}, m, now, logger)
	authService := manajemenServices.NewAuthService(userRepo, jm, google, logger)
	laporanService := manajemenServices.NewLaporanService(laporanRepo, kunjunganRepo, obatRepo, now)

	// Controller
	pasienController := pendaftaranControllers.NewPasienController(pasienService)
	kunjunganController := pendaftaranControllers.NewKunjunganController(kunjunganService)
	rekamMedisController := dokterControllers.NewRekamMedisController(rekamMedisService)
	resepDokterController := dokterControllers.NewResepController(resepDokterService)
	obatController := farmasiControllers.NewObatController(obatService)
	resepFarmasiController := farmasiControllers.NewResepController(resepFarmasiService)
	transaksiController := adminControllers.NewTransaksiController(transaksiService)
	authController := manajemenControllers.NewAuthController(authService)
	laporanController := manajemenControllers.NewLaporanController(laporanService)

	e.Use(middlewares.RequestID(logger))
	e.Use(middlewares.Logger(logger))
	e.Use(middlewares.Metrics(m))
	e.Use(middlewares.Recovery(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/ws/antrian", ws.ServeWS(hub))

	public := e.Group("/api")
	public.GET("/health", func(c echo.Context) error {
		if err := mariadb.Ping(c.Request().Context(), db); err != nil {
			return utils.Respond(c, http.StatusServiceUnavailable, "Database tidak tersedia", nil)
		}
		return utils.Respond(c, http.StatusOK, "OK", map[string]string{"database": "connected"})
	})

	// Semua route di bawah api wajib JWT
	api := e.Group("/api", middlewares.JWTMiddleware(jm, userRepo))

	manajemenRoutes.RegisterAuthRoutes(public, api, authController)
	pendaftaranRoutes.RegisterPendaftaranRoutes(api, pasienController, kunjunganController)
	dokterRoutes.RegisterDokterRoutes(api, rekamMedisController, resepDokterController)
	farmasiRoutes.RegisterFarmasiRoutes(api, obatController, resepFarmasiController)
	adminRoutes.RegisterTransaksiRoutes(api, transaksiController)
	manajemenRoutes.RegisterLaporanRoutes(api, laporanController)
}
