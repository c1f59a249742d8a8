package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Obat struct {
	IDObat      int64               `json:"idObat"`
	KodeObat    string              `json:"kodeObat"`
	NamaObat    string              `json:"namaObat"`
	Deskripsi   *string             `json:"deskripsi"`
	Satuan      string              `json:"satuan"`
	Stok        int                 `json:"stok"`
	StokMinimal int                 `json:"stokMinimal"`
	Harga       decimal.NullDecimal `json:"harga"`
	IsActive    bool                `json:"isActive"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func (o *Obat) StokRendah() bool { return o.Stok <= o.StokMinimal }

type ObatFilter struct {
	Search     string
	StokRendah bool
}

type TipeStok string

const (
	StokMasuk   TipeStok = "masuk"
	StokKeluar  TipeStok = "keluar"
	StokKoreksi TipeStok = "koreksi"
)

// StokLog mencatat setiap perubahan stok obat.
type StokLog struct {
	IDStokLog int64     `json:"idStokLog"`
	IDObat    int64     `json:"idObat"`
	Tipe      TipeStok  `json:"tipe"`
	Jumlah    int       `json:"jumlah"`
	StokAwal  int       `json:"stokAwal"`
	StokAkhir int       `json:"stokAkhir"`
	Referensi *string   `json:"referensi"`
	IDUser    int64     `json:"idUser"`
	CreatedAt time.Time `json:"createdAt"`
}

// TipePerubahan menentukan tipe log dari stok lama dan baru (set langsung oleh admin).
func TipePerubahan(awal, akhir int) (TipeStok, int) {
	switch {
	case akhir > awal:
		return StokMasuk, akhir - awal
	case akhir < awal:
		return StokKoreksi, awal - akhir
	default:
		return StokKoreksi, 0
	}
}
