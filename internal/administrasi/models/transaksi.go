package models

import (
	"github.com/shopspring/decimal"

	"github.com/c14220110/puskesmas-backend/internal/models"
)

type TransaksiRequest struct {
	IDKunjungan      int64                   `json:"idKunjungan"`
	MetodePembayaran models.MetodePembayaran `json:"metodePembayaran"`
	Diskon           decimal.Decimal         `json:"diskon"`
	Keterangan       *string                 `json:"keterangan"`
}

type VerifikasiRequest struct {
	StatusVerifikasi  models.StatusVerifikasi `json:"statusVerifikasi"`
	CatatanVerifikasi *string                 `json:"catatanVerifikasi"`
}

// UpdateTransaksiRequest dipakai admin untuk koreksi. Field nil tidak diubah.
type UpdateTransaksiRequest struct {
	BiayaPendaftaran *decimal.Decimal         `json:"biayaPendaftaran"`
	BiayaPemeriksaan *decimal.Decimal         `json:"biayaPemeriksaan"`
	BiayaObat        *decimal.Decimal         `json:"biayaObat"`
	BiayaTindakan    *decimal.Decimal         `json:"biayaTindakan"`
	Diskon           *decimal.Decimal         `json:"diskon"`
	MetodePembayaran *models.MetodePembayaran `json:"metodePembayaran"`
	StatusPembayaran *models.StatusPembayaran `json:"statusPembayaran"`
	Keterangan       *string                  `json:"keterangan"`
}
