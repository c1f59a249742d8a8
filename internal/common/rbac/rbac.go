// Package rbac memetakan setiap operasi ke himpunan role yang boleh menjalankannya.
package rbac

import "github.com/c14220110/puskesmas-backend/internal/models"

type Operation string

const (
	PasienRead  Operation = "pasien.read"
	PasienWrite Operation = "pasien.write"

	KunjunganRead   Operation = "kunjungan.read"
	KunjunganCreate Operation = "kunjungan.create"
	KunjunganStatus Operation = "kunjungan.status"

	RekamMedisRead  Operation = "rekam_medis.read"
	RekamMedisWrite Operation = "rekam_medis.write"

	ResepRead   Operation = "resep.read"
	ResepCreate Operation = "resep.create"
	ResepStatus Operation = "resep.status"

	ObatRead   Operation = "obat.read"
	ObatManage Operation = "obat.manage"

	TransaksiRead   Operation = "transaksi.read"
	TransaksiCreate Operation = "transaksi.create"
	TransaksiVerify Operation = "transaksi.verify"
	TransaksiAdmin  Operation = "transaksi.admin"

	LaporanDashboard Operation = "laporan.dashboard"
	LaporanKunjungan Operation = "laporan.kunjungan"
	LaporanObat      Operation = "laporan.obat"
)

// anyRole menandai operasi yang cukup membutuhkan login.
var anyRole = []models.Role{}

var capabilities = map[Operation][]models.Role{
	PasienRead:  {models.RoleAdmin, models.RolePendaftaran},
	PasienWrite: {models.RoleAdmin, models.RolePendaftaran},

	KunjunganRead:   anyRole,
	KunjunganCreate: {models.RoleAdmin, models.RolePendaftaran},
	KunjunganStatus: {models.RoleAdmin, models.RolePendaftaran, models.RoleDokter, models.RoleApoteker},

	RekamMedisRead:  anyRole,
	RekamMedisWrite: {models.RoleAdmin, models.RoleDokter},

	ResepRead:   anyRole,
	ResepCreate: {models.RoleAdmin, models.RoleDokter},
	ResepStatus: {models.RoleAdmin, models.RoleApoteker},

	ObatRead:   anyRole,
	ObatManage: {models.RoleAdmin, models.RoleApoteker},

	TransaksiRead:   anyRole,
	TransaksiCreate: {models.RoleAdmin, models.RolePendaftaran, models.RolePasien},
	TransaksiVerify: {models.RoleAdmin, models.RoleKepalaPuskesmas},
	TransaksiAdmin:  {models.RoleAdmin},

	LaporanDashboard: anyRole,
	LaporanKunjungan: {models.RoleAdmin, models.RoleKepalaPuskesmas},
	LaporanObat:      {models.RoleAdmin, models.RoleKepalaPuskesmas, models.RoleApoteker},
}

// Allowed memeriksa apakah role boleh menjalankan op.
// Operasi yang tidak terdaftar selalu ditolak.
func Allowed(op Operation, role models.Role) bool {
	roles, ok := capabilities[op]
	if !ok {
		return false
	}
	if len(roles) == 0 {
		return role.Valid()
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
