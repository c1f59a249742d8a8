package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	dmodels "github.com/c14220110/puskesmas-backend/internal/dokter/models"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

var dokterBudi = &models.User{IDUser: 3, Username: "dokter", Role: models.RoleDokter, IsActive: true}

func TestRekamMedisCreate_AdvancesKunjungan(t *testing.T) {
	kunj := &fakeKunjungan{rows: map[int64]*models.Kunjungan{
		1: {IDKunjungan: 1, Status: models.KunjunganTerdaftar},
	}}
	rms := newFakeRekamMedis()
	hub := &fakeHub{}
	svc := NewRekamMedisService(rms, kunj, fakeTx{}, hub, nil, zerolog.Nop())

	rm, err := svc.Create(context.Background(), dmodels.RekamMedisRequest{
		IDKunjungan: 1, Anamnesa: "demam 3 hari", Diagnosis: "Influenza",
	}, dokterBudi)
	require.NoError(t, err)
	assert.Equal(t, dokterBudi.IDUser, rm.IDDokter)
	assert.Equal(t, "Influenza", rm.Diagnosis)
	assert.Equal(t, models.KunjunganPemeriksaan, kunj.rows[1].Status)
	assert.Equal(t, 1, hub.n)
}

func TestRekamMedisCreate_SecondRecordConflict(t *testing.T) {
	kunj := &fakeKunjungan{rows: map[int64]*models.Kunjungan{
		1: {IDKunjungan: 1, Status: models.KunjunganPemeriksaan},
	}}
	first := models.RekamMedis{IDRekamMedis: 1, IDKunjungan: 1, IDDokter: 3, Diagnosis: "Influenza"}
	rms := newFakeRekamMedis(first)
	svc := NewRekamMedisService(rms, kunj, fakeTx{}, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), dmodels.RekamMedisRequest{IDKunjungan: 1, Diagnosis: "ISPA"}, dokterBudi)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Kunjungan ini sudah memiliki rekam medis", apperr.Message(err))
	assert.Len(t, rms.rows, 1)
	assert.Equal(t, "Influenza", rms.rows[1].Diagnosis)
	assert.Equal(t, models.KunjunganPemeriksaan, kunj.rows[1].Status)
}

func TestRekamMedisCreate_Rejects(t *testing.T) {
	kunj := &fakeKunjungan{rows: map[int64]*models.Kunjungan{
		1: {IDKunjungan: 1, Status: models.KunjunganBatal},
	}}
	svc := NewRekamMedisService(newFakeRekamMedis(), kunj, fakeTx{}, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), dmodels.RekamMedisRequest{IDKunjungan: 1}, dokterBudi)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), dmodels.RekamMedisRequest{IDKunjungan: 9, Diagnosis: "x"}, dokterBudi)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// kunjungan batal tidak bisa diperiksa
	_, err = svc.Create(context.Background(), dmodels.RekamMedisRequest{IDKunjungan: 1, Diagnosis: "x"}, dokterBudi)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRekamMedisUpdate_AuthorOnly(t *testing.T) {
	rms := newFakeRekamMedis(models.RekamMedis{IDRekamMedis: 1, IDKunjungan: 1, IDDokter: 3, Diagnosis: "Influenza"})
	svc := NewRekamMedisService(rms, &fakeKunjungan{}, fakeTx{}, nil, nil, zerolog.Nop())

	lain := &models.User{IDUser: 99, Role: models.RoleDokter}
	diag := "ISPA"
	_, err := svc.Update(context.Background(), 1, dmodels.UpdateRekamMedisRequest{Diagnosis: &diag}, lain)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	suhu := 38.5
	rm, err := svc.Update(context.Background(), 1, dmodels.UpdateRekamMedisRequest{Diagnosis: &diag, SuhuTubuh: &suhu}, dokterBudi)
	require.NoError(t, err)
	assert.Equal(t, "ISPA", rm.Diagnosis)
	assert.Equal(t, 38.5, *rm.SuhuTubuh)

	kosong := " "
	_, err = svc.Update(context.Background(), 1, dmodels.UpdateRekamMedisRequest{Diagnosis: &kosong}, dokterBudi)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func newResepSvc(obat fakeObat) (*ResepService, *fakeResep) {
	resep := &fakeResep{rows: map[int64]*models.Resep{}}
	rms := newFakeRekamMedis(models.RekamMedis{IDRekamMedis: 1, IDKunjungan: 1, IDDokter: 3})
	return NewResepService(resep, obat, rms, fakeTx{}, nil, clock, zerolog.Nop()), resep
}

func TestCreateResep_Pending(t *testing.T) {
	obat := fakeObat{1: {IDObat: 1, NamaObat: "Paracetamol 500mg", Stok: 500}}
	svc, store := newResepSvc(obat)

	r, err := svc.CreateResep(context.Background(), dmodels.ResepRequest{
		IDRekamMedis: 1,
		Detail:       []dmodels.ResepDetailRequest{{IDObat: 1, Jumlah: 10, AturanPakai: "3x1 sesudah makan"}},
	}, dokterBudi)
	require.NoError(t, err)
	assert.Equal(t, "RSP-20241220-0001", r.NoResep)
	assert.Equal(t, models.ResepPending, r.Status)
	assert.Equal(t, dokterBudi.IDUser, r.IDDokter)
	require.Len(t, r.Detail, 1)
	// stok belum berubah saat resep dibuat
	assert.Equal(t, 500, obat[1].Stok)

	r2, err := svc.CreateResep(context.Background(), dmodels.ResepRequest{
		IDRekamMedis: 1,
		Detail:       []dmodels.ResepDetailRequest{{IDObat: 1, Jumlah: 1, AturanPakai: "1x1"}},
	}, dokterBudi)
	require.NoError(t, err)
	assert.Equal(t, "RSP-20241220-0002", r2.NoResep)
	assert.Len(t, store.rows, 2)
}

func TestCreateResep_StokTidakCukup(t *testing.T) {
	obat := fakeObat{1: {IDObat: 1, NamaObat: "Amoxicillin 500mg", Stok: 5}}
	svc, store := newResepSvc(obat)

	_, err := svc.CreateResep(context.Background(), dmodels.ResepRequest{
		IDRekamMedis: 1,
		Detail:       []dmodels.ResepDetailRequest{{IDObat: 1, Jumlah: 10, AturanPakai: "3x1"}},
	}, dokterBudi)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Stok obat Amoxicillin 500mg tidak mencukupi. Stok tersedia: 5", apperr.Message(err))
	assert.Empty(t, store.rows)
}

func TestCreateResep_AggregatesSameObat(t *testing.T) {
	obat := fakeObat{1: {IDObat: 1, NamaObat: "Antasida", Stok: 8}}
	svc, store := newResepSvc(obat)

	// 5 + 5 > 8 walau tiap baris sendiri cukup
	_, err := svc.CreateResep(context.Background(), dmodels.ResepRequest{
		IDRekamMedis: 1,
		Detail: []dmodels.ResepDetailRequest{
			{IDObat: 1, Jumlah: 5, AturanPakai: "3x1"},
			{IDObat: 1, Jumlah: 5, AturanPakai: "3x1"},
		},
	}, dokterBudi)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, store.rows)
}

func TestCreateResep_Rejects(t *testing.T) {
	svc, _ := newResepSvc(fakeObat{1: {IDObat: 1, NamaObat: "Antasida", Stok: 8}})
	ctx := context.Background()

	cases := []struct {
		name string
		req  dmodels.ResepRequest
		kind apperr.Kind
	}{
		{"tanpa rekam medis", dmodels.ResepRequest{Detail: []dmodels.ResepDetailRequest{{IDObat: 1, Jumlah: 1, AturanPakai: "1x1"}}}, apperr.KindValidation},
		{"tanpa detail", dmodels.ResepRequest{IDRekamMedis: 1}, apperr.KindValidation},
		{"jumlah nol", dmodels.ResepRequest{IDRekamMedis: 1, Detail: []dmodels.ResepDetailRequest{{IDObat: 1, AturanPakai: "1x1"}}}, apperr.KindValidation},
		{"aturan kosong", dmodels.ResepRequest{IDRekamMedis: 1, Detail: []dmodels.ResepDetailRequest{{IDObat: 1, Jumlah: 1}}}, apperr.KindValidation},
		{"obat tidak ada", dmodels.ResepRequest{IDRekamMedis: 1, Detail: []dmodels.ResepDetailRequest{{IDObat: 7, Jumlah: 1, AturanPakai: "1x1"}}}, apperr.KindNotFound},
		{"rekam medis tidak ada", dmodels.ResepRequest{IDRekamMedis: 4, Detail: []dmodels.ResepDetailRequest{{IDObat: 1, Jumlah: 1, AturanPakai: "1x1"}}}, apperr.KindNotFound},
	}
	for _, tc := range cases {
		_, err := svc.CreateResep(ctx, tc.req, dokterBudi)
		assert.Equal(t, tc.kind, apperr.KindOf(err), tc.name)
	}
}
