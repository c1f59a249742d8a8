package models

import "time"

type RekamMedis struct {
	IDRekamMedis     int64     `json:"idRekamMedis"`
	IDKunjungan      int64     `json:"idKunjungan"`
	IDDokter         int64     `json:"idDokter"`
	Anamnesa         string    `json:"anamnesa"`
	PemeriksaanFisik string    `json:"pemeriksaanFisik"`
	TekananDarah     *string   `json:"tekananDarah"`
	BeratBadan       *float64  `json:"beratBadan"`
	TinggiBadan      *float64  `json:"tinggiBadan"`
	SuhuTubuh        *float64  `json:"suhuTubuh"`
	Diagnosis        string    `json:"diagnosis"`
	Tindakan         *string   `json:"tindakan"`
	Catatan          *string   `json:"catatan"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Kunjungan *Kunjungan   `json:"kunjungan,omitempty"`
	Dokter    *UserRingkas `json:"dokter,omitempty"`
	Resep     []Resep      `json:"resep,omitempty"`
}
