package models

import (
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
)

type StatusKunjungan string

const (
	KunjunganTerdaftar   StatusKunjungan = "terdaftar"
	KunjunganPemeriksaan StatusKunjungan = "pemeriksaan"
	KunjunganFarmasi     StatusKunjungan = "farmasi"
	KunjunganSelesai     StatusKunjungan = "selesai"
	KunjunganBatal       StatusKunjungan = "batal"
)

func (s StatusKunjungan) Valid() bool {
	switch s {
	case KunjunganTerdaftar, KunjunganPemeriksaan, KunjunganFarmasi, KunjunganSelesai, KunjunganBatal:
		return true
	}
	return false
}

type JenisKunjungan string

const (
	RawatJalan JenisKunjungan = "rawat_jalan"
	Kontrol    JenisKunjungan = "kontrol"
	Darurat    JenisKunjungan = "darurat"
)

func (j JenisKunjungan) Valid() bool {
	return j == RawatJalan || j == Kontrol || j == Darurat
}

// EventKunjungan adalah langkah alur kerja yang menggeser status kunjungan.
type EventKunjungan string

const (
	EventRekamMedisDibuat EventKunjungan = "rekam_medis_dibuat"
	EventResepSelesai     EventKunjungan = "resep_selesai"
	EventDibatalkan       EventKunjungan = "dibatalkan"
)

type transisi struct {
	dari  StatusKunjungan
	event EventKunjungan
}

// Tabel transisi yang diizinkan. Pasangan yang tidak tercantum ditolak.
var tabelTransisi = map[transisi]StatusKunjungan{
	{KunjunganTerdaftar, EventRekamMedisDibuat}: KunjunganPemeriksaan,

	{KunjunganPemeriksaan, EventResepSelesai}: KunjunganSelesai,
	{KunjunganFarmasi, EventResepSelesai}:     KunjunganSelesai,
	// resep kedua pada kunjungan yang sudah selesai
	{KunjunganSelesai, EventResepSelesai}: KunjunganSelesai,

	{KunjunganTerdaftar, EventDibatalkan}:   KunjunganBatal,
	{KunjunganPemeriksaan, EventDibatalkan}: KunjunganBatal,
	{KunjunganFarmasi, EventDibatalkan}:     KunjunganBatal,
}

// Transition mengembalikan status berikutnya untuk pasangan (status, event).
func Transition(from StatusKunjungan, event EventKunjungan) (StatusKunjungan, error) {
	next, ok := tabelTransisi[transisi{from, event}]
	if !ok {
		return from, apperr.Conflict("Kunjungan berstatus %s tidak dapat diproses untuk %s", from, event)
	}
	return next, nil
}

type Kunjungan struct {
	IDKunjungan          int64           `json:"idKunjungan"`
	NoKunjungan          string          `json:"noKunjungan"`
	IDPasien             int64           `json:"idPasien"`
	TanggalKunjungan     Tanggal         `json:"tanggalKunjungan"`
	JamKunjungan         string          `json:"jamKunjungan"`
	JenisKunjungan       JenisKunjungan  `json:"jenisKunjungan"`
	Keluhan              *string         `json:"keluhan"`
	Status               StatusKunjungan `json:"status"`
	IDPetugasPendaftaran int64           `json:"idPetugasPendaftaran"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`

	Pasien             *Pasien      `json:"pasien,omitempty"`
	PetugasPendaftaran *UserRingkas `json:"petugasPendaftaran,omitempty"`
	RekamMedis         *RekamMedis  `json:"rekamMedis,omitempty"`
}

type KunjunganFilter struct {
	Tanggal  Tanggal
	Status   StatusKunjungan
	IDPasien int64
}
