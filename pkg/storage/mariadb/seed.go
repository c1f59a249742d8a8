package mariadb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/puskesmas-backend/internal/models"
)

type seedUser struct {
	username, password, email, nama, nip string
	role                                 models.Role
}

var defaultUsers = []seedUser{
	{"admin", "admin123", "admin@puskesmas.go.id", "Administrator", "198001012005011001", models.RoleAdmin},
	{"pendaftaran", "pendaftaran123", "pendaftaran@puskesmas.go.id", "Petugas Pendaftaran", "198502022010012002", models.RolePendaftaran},
	{"dokter", "dokter123", "dokter@puskesmas.go.id", "dr. Budi Santoso", "197803032006041003", models.RoleDokter},
	{"apoteker", "apoteker123", "apoteker@puskesmas.go.id", "Apt. Siti Rahayu", "198704042011012004", models.RoleApoteker},
	{"kepala", "kepala123", "kepala@puskesmas.go.id", "dr. Ahmad Wijaya", "197505052003121005", models.RoleKepalaPuskesmas},
}

var defaultObat = []models.Obat{
	{KodeObat: "OBT001", NamaObat: "Paracetamol 500mg", Satuan: "Tablet", Stok: 500, StokMinimal: 100, Harga: decimal.NewNullDecimal(decimal.NewFromInt(500))},
	{KodeObat: "OBT002", NamaObat: "Amoxicillin 500mg", Satuan: "Kapsul", Stok: 300, StokMinimal: 50, Harga: decimal.NewNullDecimal(decimal.NewFromInt(2000))},
	{KodeObat: "OBT003", NamaObat: "OBH Kombi", Satuan: "Botol", Stok: 150, StokMinimal: 30, Harga: decimal.NewNullDecimal(decimal.NewFromInt(15000))},
	{KodeObat: "OBT004", NamaObat: "Vitamin C 500mg", Satuan: "Tablet", Stok: 400, StokMinimal: 80, Harga: decimal.NewNullDecimal(decimal.NewFromInt(1000))},
	{KodeObat: "OBT005", NamaObat: "Antasida", Satuan: "Tablet", Stok: 200, StokMinimal: 50, Harga: decimal.NewNullDecimal(decimal.NewFromInt(800))},
}

// Seed mengisi user default dan master obat. Baris yang sudah ada dilewati (INSERT IGNORE).
func Seed(ctx context.Context, db *sql.DB) (users, obat int64, err error) {
	for _, u := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return users, obat, err
		}
		res, err := db.ExecContext(ctx,
			`INSERT IGNORE INTO users (username, email, password, role, nama_lengkap, nip, is_active)
			 VALUES (?,?,?,?,?,?,1)`,
			u.username, u.email, string(hash), u.role, u.nama, u.nip)
		if err != nil {
			return users, obat, fmt.Errorf("seed user %s: %w", u.username, err)
		}
		n, _ := res.RowsAffected()
		users += n
	}

	for _, o := range defaultObat {
		res, err := db.ExecContext(ctx,
			`INSERT IGNORE INTO obat (kode_obat, nama_obat, satuan, stok, stok_minimal, harga, is_active)
			 VALUES (?,?,?,?,?,?,1)`,
			o.KodeObat, o.NamaObat, o.Satuan, o.Stok, o.StokMinimal, o.Harga)
		if err != nil {
			return users, obat, fmt.Errorf("seed obat %s: %w", o.KodeObat, err)
		}
		n, _ := res.RowsAffected()
		obat += n
	}
	return users, obat, nil
}
