package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/config"
)

// Kode error MySQL/MariaDB untuk pelanggaran unique index.
const errDuplicateEntry = 1062

// Connect membuka koneksi ke database MariaDB.
// DSN disusun lewat mysql.Config sehingga parseTime dan lokasi waktu
// selalu konsisten dengan konfigurasi aplikasi.
func Connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("gagal membuka koneksi ke database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("gagal melakukan ping ke database: %w", err)
	}

	logger.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("Berhasil terhubung ke MariaDB.")
	return db, nil
}

// DSN menghasilkan string koneksi, contoh:
// root:secret@tcp(localhost:3306)/puskesmas_db?parseTime=true&loc=Asia%2FJakarta
func DSN(cfg *config.Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	mc.Loc = cfg.Location
	// RowsAffected menghitung baris yang cocok, bukan hanya yang berubah.
	mc.ClientFoundRows = true
	return mc.FormatDSN()
}

// IsDuplicate bernilai true bila err berasal dari unique index yang dilanggar.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}

// Ping dipakai oleh endpoint health.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
