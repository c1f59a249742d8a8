package models

import "time"

type StatusResep string

const (
	ResepPending  StatusResep = "pending"
	ResepDiproses StatusResep = "diproses"
	ResepSelesai  StatusResep = "selesai"
	ResepBatal    StatusResep = "batal"
)

func (s StatusResep) Valid() bool {
	switch s {
	case ResepPending, ResepDiproses, ResepSelesai, ResepBatal:
		return true
	}
	return false
}

type Resep struct {
	IDResep         int64       `json:"idResep"`
	NoResep         string      `json:"noResep"`
	IDRekamMedis    int64       `json:"idRekamMedis"`
	IDDokter        int64       `json:"idDokter"`
	IDApoteker      *int64      `json:"idApoteker"`
	TanggalResep    Tanggal     `json:"tanggalResep"`
	Status          StatusResep `json:"status"`
	Catatan         *string     `json:"catatan"`
	TanggalDilayani *time.Time  `json:"tanggalDilayani"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`

	// IDKunjungan diisi dari join rekam_medis, tidak disimpan di tabel resep.
	IDKunjungan int64 `json:"idKunjungan,omitempty"`

	Dokter   *UserRingkas  `json:"dokter,omitempty"`
	Apoteker *UserRingkas  `json:"apoteker,omitempty"`
	Pasien   *Pasien       `json:"pasien,omitempty"`
	Detail   []ResepDetail `json:"detail"`
}

type ResepDetail struct {
	IDResepDetail int64   `json:"idResepDetail"`
	IDResep       int64   `json:"idResep"`
	IDObat        int64   `json:"idObat"`
	Jumlah        int     `json:"jumlah"`
	AturanPakai   string  `json:"aturanPakai"`
	Keterangan    *string `json:"keterangan"`

	Obat *Obat `json:"obat,omitempty"`
}

type ResepFilter struct {
	Status  StatusResep
	Tanggal Tanggal
}
