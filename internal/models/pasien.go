package models

import "time"

type JenisKelamin string

const (
	LakiLaki  JenisKelamin = "L"
	Perempuan JenisKelamin = "P"
)

func (j JenisKelamin) Valid() bool { return j == LakiLaki || j == Perempuan }

type StatusPembayaranPasien string

const (
	PembayaranUmum StatusPembayaranPasien = "umum"
	PembayaranBPJS StatusPembayaranPasien = "bpjs"
)

func (s StatusPembayaranPasien) Valid() bool { return s == PembayaranUmum || s == PembayaranBPJS }

type Pasien struct {
	IDPasien         int64                  `json:"idPasien"`
	NoRekamMedis     string                 `json:"noRekamMedis"`
	NIK              string                 `json:"nik"`
	NamaLengkap      string                 `json:"namaLengkap"`
	TanggalLahir     Tanggal                `json:"tanggalLahir"`
	JenisKelamin     JenisKelamin           `json:"jenisKelamin"`
	Alamat           string                 `json:"alamat"`
	NoTelp           string                 `json:"noTelp"`
	StatusPembayaran StatusPembayaranPasien `json:"statusPembayaran"`
	NoBPJS           *string                `json:"noBPJS"`
	GolonganDarah    *string                `json:"golonganDarah"`
	RiwayatAlergi    *string                `json:"riwayatAlergi"`
	CreatedByID      int64                  `json:"createdById"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`

	Kunjungan []Kunjungan `json:"kunjungan,omitempty"`
}

type PasienFilter struct {
	Search           string
	StatusPembayaran StatusPembayaranPasien
}
