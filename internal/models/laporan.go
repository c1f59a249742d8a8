package models

import "github.com/shopspring/decimal"

type Dashboard struct {
	KunjunganHariIni         int             `json:"kunjunganHariIni"`
	TotalPasien              int             `json:"totalPasien"`
	ResepPending             int             `json:"resepPending"`
	ObatStokRendah           int             `json:"obatStokRendah"`
	TotalPembayaran          decimal.Decimal `json:"totalPembayaran"`
	PembayaranMenunggu       decimal.Decimal `json:"pembayaranMenunggu"`
	JumlahMenungguVerifikasi int             `json:"jumlahMenungguVerifikasi"`
}

type StatistikKunjungan struct {
	Total int `json:"total"`
	Umum  int `json:"umum"`
	BPJS  int `json:"bpjs"`
}

type LaporanKunjungan struct {
	Data      []Kunjungan        `json:"data"`
	Statistik StatistikKunjungan `json:"statistik"`
}

type StatistikPasien struct {
	Total     int `json:"total"`
	Umum      int `json:"umum"`
	BPJS      int `json:"bpjs"`
	LakiLaki  int `json:"lakiLaki"`
	Perempuan int `json:"perempuan"`
}

type StatistikObat struct {
	TotalObat  int `json:"totalObat"`
	StokRendah int `json:"stokRendah"`
	StokHabis  int `json:"stokHabis"`
}

type LaporanObat struct {
	Data      []Obat        `json:"data"`
	Statistik StatistikObat `json:"statistik"`
}
