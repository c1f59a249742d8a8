package models

// ResepRequest adalah payload pembuatan resep oleh dokter.
type ResepRequest struct {
	IDRekamMedis int64                `json:"idRekamMedis"`
	Catatan      *string              `json:"catatan"`
	Detail       []ResepDetailRequest `json:"detail"`
}

// Satu baris obat dalam resep
type ResepDetailRequest struct {
	IDObat      int64   `json:"idObat"`
	Jumlah      int     `json:"jumlah"`
	AturanPakai string  `json:"aturanPakai"`
	Keterangan  *string `json:"keterangan,omitempty"`
}
