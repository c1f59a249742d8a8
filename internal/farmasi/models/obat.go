package models

import (
	"github.com/shopspring/decimal"

	"github.com/c14220110/puskesmas-backend/internal/models"
)

type ObatRequest struct {
	KodeObat    string              `json:"kodeObat"`
	NamaObat    string              `json:"namaObat"`
	Deskripsi   *string             `json:"deskripsi"`
	Satuan      string              `json:"satuan"`
	Stok        int                 `json:"stok"`
	StokMinimal int                 `json:"stokMinimal"`
	Harga       decimal.NullDecimal `json:"harga"`
	IsActive    *bool               `json:"isActive"`
}

// UpdateObatRequest tidak memuat stok. Perubahan stok lewat StokRequest.
type UpdateObatRequest struct {
	KodeObat    *string          `json:"kodeObat"`
	NamaObat    *string          `json:"namaObat"`
	Deskripsi   *string          `json:"deskripsi"`
	Satuan      *string          `json:"satuan"`
	StokMinimal *int             `json:"stokMinimal"`
	Harga       *decimal.Decimal `json:"harga"`
	IsActive    *bool            `json:"isActive"`
}

type StokRequest struct {
	Stok *int `json:"stok"`
}

type StatusResepRequest struct {
	Status models.StatusResep `json:"status"`
}
