package models

type RekamMedisRequest struct {
	IDKunjungan      int64    `json:"idKunjungan"`
	Anamnesa         string   `json:"anamnesa"`
	PemeriksaanFisik string   `json:"pemeriksaanFisik"`
	TekananDarah     *string  `json:"tekananDarah"`
	BeratBadan       *float64 `json:"beratBadan"`
	TinggiBadan      *float64 `json:"tinggiBadan"`
	SuhuTubuh        *float64 `json:"suhuTubuh"`
	Diagnosis        string   `json:"diagnosis"`
	Tindakan         *string  `json:"tindakan"`
	Catatan          *string  `json:"catatan"`
}

// UpdateRekamMedisRequest: field nil tidak diubah.
type UpdateRekamMedisRequest struct {
	Anamnesa         *string  `json:"anamnesa"`
	PemeriksaanFisik *string  `json:"pemeriksaanFisik"`
	TekananDarah     *string  `json:"tekananDarah"`
	BeratBadan       *float64 `json:"beratBadan"`
	TinggiBadan      *float64 `json:"tinggiBadan"`
	SuhuTubuh        *float64 `json:"suhuTubuh"`
	Diagnosis        *string  `json:"diagnosis"`
	Tindakan         *string  `json:"tindakan"`
	Catatan          *string  `json:"catatan"`
}
