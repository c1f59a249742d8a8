package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MetodePembayaran string

const (
	BayarTunai    MetodePembayaran = "tunai"
	BayarTransfer MetodePembayaran = "transfer"
	BayarDebit    MetodePembayaran = "debit"
	BayarBPJS     MetodePembayaran = "bpjs"
)

func (m MetodePembayaran) Valid() bool {
	switch m {
	case BayarTunai, BayarTransfer, BayarDebit, BayarBPJS:
		return true
	}
	return false
}

type StatusPembayaran string

const (
	Lunas        StatusPembayaran = "lunas"
	BelumDibayar StatusPembayaran = "belum_dibayar"
	Dibatalkan   StatusPembayaran = "dibatalkan"
)

func (s StatusPembayaran) Valid() bool {
	return s == Lunas || s == BelumDibayar || s == Dibatalkan
}

type StatusVerifikasi string

const (
	VerifikasiMenunggu  StatusVerifikasi = "menunggu"
	VerifikasiDisetujui StatusVerifikasi = "disetujui"
	VerifikasiDitolak   StatusVerifikasi = "ditolak"
)

func (s StatusVerifikasi) Valid() bool {
	return s == VerifikasiMenunggu || s == VerifikasiDisetujui || s == VerifikasiDitolak
}

type Transaksi struct {
	IDTransaksi       int64            `json:"idTransaksi"`
	NoTransaksi       string           `json:"noTransaksi"`
	IDKunjungan       int64            `json:"idKunjungan"`
	IDPasien          int64            `json:"idPasien"`
	TanggalTransaksi  Tanggal          `json:"tanggalTransaksi"`
	BiayaPendaftaran  decimal.Decimal  `json:"biayaPendaftaran"`
	BiayaPemeriksaan  decimal.Decimal  `json:"biayaPemeriksaan"`
	BiayaObat         decimal.Decimal  `json:"biayaObat"`
	BiayaTindakan     decimal.Decimal  `json:"biayaTindakan"`
	Diskon            decimal.Decimal  `json:"diskon"`
	TotalBiaya        decimal.Decimal  `json:"totalBiaya"`
	MetodePembayaran  MetodePembayaran `json:"metodePembayaran"`
	StatusPembayaran  StatusPembayaran `json:"statusPembayaran"`
	StatusVerifikasi  StatusVerifikasi `json:"statusVerifikasi"`
	IDKasir           *int64           `json:"idKasir"`
	IDVerifikator     *int64           `json:"idVerifikator"`
	Keterangan        *string          `json:"keterangan"`
	CatatanVerifikasi *string          `json:"catatanVerifikasi"`
	TanggalVerifikasi *time.Time       `json:"tanggalVerifikasi"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`

	Kunjungan   *Kunjungan   `json:"kunjungan,omitempty"`
	Pasien      *Pasien      `json:"pasien,omitempty"`
	Kasir       *UserRingkas `json:"kasir,omitempty"`
	Verifikator *UserRingkas `json:"verifikator,omitempty"`
	Resep       []Resep      `json:"resep,omitempty"`
}

// Biaya adalah rincian tagihan satu kunjungan sebelum diskon.
type Biaya struct {
	BiayaPendaftaran decimal.Decimal `json:"biayaPendaftaran"`
	BiayaPemeriksaan decimal.Decimal `json:"biayaPemeriksaan"`
	BiayaObat        decimal.Decimal `json:"biayaObat"`
	BiayaTindakan    decimal.Decimal `json:"biayaTindakan"`
	Total            decimal.Decimal `json:"total"`
}

func NewBiaya(pendaftaran, pemeriksaan, obat, tindakan decimal.Decimal) Biaya {
	return Biaya{
		BiayaPendaftaran: pendaftaran,
		BiayaPemeriksaan: pemeriksaan,
		BiayaObat:        obat,
		BiayaTindakan:    tindakan,
		Total:            decimal.Sum(pendaftaran, pemeriksaan, obat, tindakan),
	}
}

type TransaksiFilter struct {
	IDPasien         int64
	StatusVerifikasi StatusVerifikasi
}
