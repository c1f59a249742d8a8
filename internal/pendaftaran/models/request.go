package models

import (
	"github.com/c14220110/puskesmas-backend/internal/models"
)

// PasienRequest adalah payload pendaftaran pasien baru.
type PasienRequest struct {
	NIK              string                        `json:"nik"`
	NamaLengkap      string                        `json:"namaLengkap"`
	TanggalLahir     models.Tanggal                `json:"tanggalLahir"`
	JenisKelamin     models.JenisKelamin           `json:"jenisKelamin"`
	Alamat           string                        `json:"alamat"`
	NoTelp           string                        `json:"noTelp"`
	StatusPembayaran models.StatusPembayaranPasien `json:"statusPembayaran"`
	NoBPJS           *string                       `json:"noBPJS"`
	GolonganDarah    *string                       `json:"golonganDarah"`
	RiwayatAlergi    *string                       `json:"riwayatAlergi"`
}

// UpdatePasienRequest hanya mengubah field yang dikirim (nil = tidak berubah).
type UpdatePasienRequest struct {
	NIK              *string                        `json:"nik"`
	NamaLengkap      *string                        `json:"namaLengkap"`
	TanggalLahir     *models.Tanggal                `json:"tanggalLahir"`
	JenisKelamin     *models.JenisKelamin           `json:"jenisKelamin"`
	Alamat           *string                        `json:"alamat"`
	NoTelp           *string                        `json:"noTelp"`
	StatusPembayaran *models.StatusPembayaranPasien `json:"statusPembayaran"`
	NoBPJS           *string                        `json:"noBPJS"`
	GolonganDarah    *string                        `json:"golonganDarah"`
	RiwayatAlergi    *string                        `json:"riwayatAlergi"`
}

// KunjunganRequest: tanggal dan jam boleh kosong, diisi waktu sekarang.
type KunjunganRequest struct {
	IDPasien         int64                 `json:"idPasien"`
	TanggalKunjungan models.Tanggal        `json:"tanggalKunjungan"`
	JamKunjungan     string                `json:"jamKunjungan"`
	JenisKunjungan   models.JenisKunjungan `json:"jenisKunjungan"`
	Keluhan          *string               `json:"keluhan"`
}

type StatusKunjunganRequest struct {
	Status models.StatusKunjungan `json:"status"`
}
