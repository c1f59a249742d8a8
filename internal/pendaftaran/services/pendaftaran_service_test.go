package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
	pmodels "github.com/c14220110/puskesmas-backend/internal/pendaftaran/models"
)

var petugas = &models.User{IDUser: 2, Username: "pendaftaran", Role: models.RolePendaftaran, IsActive: true}

func strptr(s string) *string { return &s }

func pasienRequest(nik string) pmodels.PasienRequest {
	return pmodels.PasienRequest{
		NIK:          nik,
		NamaLengkap:  "Sari Dewi",
		TanggalLahir: models.NewTanggal(fixedNow.AddDate(-30, 0, 0)),
		JenisKelamin: models.Perempuan,
		Alamat:       "Jl. Melati 3",
		NoTelp:       "08123",
	}
}

func TestPasienCreate_NomorRekamMedis(t *testing.T) {
	store := newFakePasien(models.Pasien{IDPasien: 1, NIK: "111", NoRekamMedis: "RM-000041"})
	tx := &fakeTx{}
	svc := NewPasienService(store, newFakeKunjungan(), tx, clock, zerolog.Nop())

	p, err := svc.Create(context.Background(), pasienRequest("222"), petugas)
	require.NoError(t, err)
	assert.Equal(t, "RM-000042", p.NoRekamMedis)
	assert.Equal(t, models.PembayaranUmum, p.StatusPembayaran)
	assert.Equal(t, petugas.IDUser, p.CreatedByID)
	assert.Equal(t, 1, tx.calls)

	p2, err := svc.Create(context.Background(), pasienRequest("333"), petugas)
	require.NoError(t, err)
	assert.Equal(t, "RM-000043", p2.NoRekamMedis)
}

func TestPasienCreate_Validation(t *testing.T) {
	svc := NewPasienService(newFakePasien(), newFakeKunjungan(), &fakeTx{}, clock, zerolog.Nop())

	req := pasienRequest("")
	_, err := svc.Create(context.Background(), req, petugas)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	req = pasienRequest("444")
	req.JenisKelamin = "X"
	_, err = svc.Create(context.Background(), req, petugas)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	req = pasienRequest("444")
	req.StatusPembayaran = "asuransi"
	_, err = svc.Create(context.Background(), req, petugas)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPasienCreate_DuplicateNIK(t *testing.T) {
	store := newFakePasien(models.Pasien{IDPasien: 1, NIK: "111", NoRekamMedis: "RM-000001"})
	svc := NewPasienService(store, newFakeKunjungan(), &fakeTx{}, clock, zerolog.Nop())

	_, err := svc.Create(context.Background(), pasienRequest("111"), petugas)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestPasienUpdate_Merge(t *testing.T) {
	store := newFakePasien(models.Pasien{
		IDPasien: 1, NIK: "111", NoRekamMedis: "RM-000001", NamaLengkap: "Sari",
		TanggalLahir: models.NewTanggal(fixedNow), JenisKelamin: models.Perempuan, Alamat: "Jl. A",
		StatusPembayaran: models.PembayaranUmum,
	})
	svc := NewPasienService(store, newFakeKunjungan(), &fakeTx{}, clock, zerolog.Nop())

	bpjs := models.PembayaranBPJS
	p, err := svc.Update(context.Background(), 1, pmodels.UpdatePasienRequest{
		StatusPembayaran: &bpjs, NoBPJS: strptr("000123"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PembayaranBPJS, p.StatusPembayaran)
	assert.Equal(t, "000123", *p.NoBPJS)
	assert.Equal(t, "Sari", p.NamaLengkap)

	_, err = svc.Update(context.Background(), 99, pmodels.UpdatePasienRequest{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPasienGet_WithKunjungan(t *testing.T) {
	store := newFakePasien(models.Pasien{IDPasien: 1, NIK: "111"})
	kunj := newFakeKunjungan(
		models.Kunjungan{IDKunjungan: 1, IDPasien: 1},
		models.Kunjungan{IDKunjungan: 2, IDPasien: 2},
		models.Kunjungan{IDKunjungan: 3, IDPasien: 1},
	)
	svc := NewPasienService(store, kunj, &fakeTx{}, clock, zerolog.Nop())

	p, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, p.Kunjungan, 2)
	assert.Equal(t, int64(3), p.Kunjungan[0].IDKunjungan)
}

func newKunjunganSvc(kunj *fakeKunjungan, hub *fakeHub) *KunjunganService {
	pasien := newFakePasien(models.Pasien{IDPasien: 1, NIK: "111"})
	return NewKunjunganService(kunj, pasien, &fakeTx{}, hub, nil, clock, zerolog.Nop())
}

func TestKunjunganCreate_Sequential(t *testing.T) {
	hub := &fakeHub{}
	svc := newKunjunganSvc(newFakeKunjungan(), hub)

	req := pmodels.KunjunganRequest{IDPasien: 1, JamKunjungan: "09:15", Keluhan: strptr("demam")}
	k1, err := svc.Create(context.Background(), req, petugas)
	require.NoError(t, err)
	k2, err := svc.Create(context.Background(), req, petugas)
	require.NoError(t, err)

	assert.Equal(t, "KJ-20241220-0001", k1.NoKunjungan)
	assert.Equal(t, "KJ-20241220-0002", k2.NoKunjungan)
	assert.Equal(t, models.KunjunganTerdaftar, k1.Status)
	assert.Equal(t, models.RawatJalan, k1.JenisKunjungan)
	assert.Equal(t, "09:15:00", k1.JamKunjungan)
	assert.Equal(t, "2024-12-20", k1.TanggalKunjungan.String())
	assert.Equal(t, petugas.IDUser, k1.IDPetugasPendaftaran)

	require.Len(t, hub.events, 2)
	assert.Equal(t, EventKunjunganUpdate, hub.events[0].event)
}

func TestKunjunganCreate_Rejects(t *testing.T) {
	svc := newKunjunganSvc(newFakeKunjungan(), &fakeHub{})

	_, err := svc.Create(context.Background(), pmodels.KunjunganRequest{}, petugas)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), pmodels.KunjunganRequest{IDPasien: 1, JenisKunjungan: "inap"}, petugas)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), pmodels.KunjunganRequest{IDPasien: 1, JamKunjungan: "pagi"}, petugas)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), pmodels.KunjunganRequest{IDPasien: 77}, petugas)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestKunjunganUpdateStatus_Manual(t *testing.T) {
	kunj := newFakeKunjungan(models.Kunjungan{IDKunjungan: 5, Status: models.KunjunganSelesai})
	hub := &fakeHub{}
	svc := newKunjunganSvc(kunj, hub)

	// koreksi manual boleh mundur
	k, err := svc.UpdateStatus(context.Background(), 5, models.KunjunganFarmasi)
	require.NoError(t, err)
	assert.Equal(t, models.KunjunganFarmasi, k.Status)
	assert.Len(t, hub.events, 1)

	_, err = svc.UpdateStatus(context.Background(), 5, "dirawat")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(context.Background(), 6, models.KunjunganBatal)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestKunjunganCancel(t *testing.T) {
	kunj := newFakeKunjungan(
		models.Kunjungan{IDKunjungan: 1, Status: models.KunjunganPemeriksaan},
		models.Kunjungan{IDKunjungan: 2, Status: models.KunjunganSelesai},
	)
	svc := newKunjunganSvc(kunj, &fakeHub{})

	k, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.KunjunganBatal, k.Status)
	assert.Equal(t, models.KunjunganBatal, kunj.rows[1].Status)

	_, err = svc.Cancel(context.Background(), 2)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, models.KunjunganSelesai, kunj.rows[2].Status)
}
