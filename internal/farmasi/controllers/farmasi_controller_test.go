package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/common/middlewares"
	"github.com/c14220110/puskesmas-backend/internal/farmasi/services"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

var apoteker = &models.User{IDUser: 4, Username: "apoteker", Role: models.RoleApoteker, IsActive: true}

type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type memObat struct {
	rows map[int64]*models.Obat
	logs []models.StokLog
}

func (m *memObat) List(ctx context.Context, f models.ObatFilter) ([]models.Obat, error) {
	out := []models.Obat{}
	for _, o := range m.rows {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memObat) GetByID(ctx context.Context, id int64) (*models.Obat, error) {
	o, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Obat tidak ditemukan")
	}
	cp := *o
	return &cp, nil
}

func (m *memObat) LockByID(ctx context.Context, id int64) (*models.Obat, error) {
	return m.GetByID(ctx, id)
}

func (m *memObat) Create(ctx context.Context, o *models.Obat) error {
	o.IDObat = int64(len(m.rows) + 1)
	cp := *o
	m.rows[o.IDObat] = &cp
	return nil
}

func (m *memObat) Update(ctx context.Context, o *models.Obat) error {
	cp := *o
	m.rows[o.IDObat] = &cp
	return nil
}

func (m *memObat) SetStok(ctx context.Context, id int64, stok int) error {
	m.rows[id].Stok = stok
	return nil
}

func (m *memObat) KurangiStok(ctx context.Context, id int64, jumlah int) (int, bool, error) {
	o := m.rows[id]
	if o.Stok < jumlah {
		return o.Stok, false, nil
	}
	o.Stok -= jumlah
	return o.Stok, true, nil
}

func (m *memObat) CreateStokLog(ctx context.Context, l *models.StokLog) error {
	m.logs = append(m.logs, *l)
	return nil
}

func (m *memObat) ListStokLog(ctx context.Context, idObat int64) ([]models.StokLog, error) {
	out := []models.StokLog{}
	for _, l := range m.logs {
		if l.IDObat == idObat {
			out = append(out, l)
		}
	}
	return out, nil
}

type memResep map[int64]*models.Resep

func (m memResep) List(ctx context.Context, f models.ResepFilter) ([]models.Resep, error) {
	out := []models.Resep{}
	for _, r := range m {
		out = append(out, *r)
	}
	return out, nil
}

func (m memResep) GetByID(ctx context.Context, id int64) (*models.Resep, error) {
	r, ok := m[id]
	if !ok {
		return nil, apperr.NotFound("Resep tidak ditemukan")
	}
	cp := *r
	return &cp, nil
}

func (m memResep) LockStatus(ctx context.Context, id int64) (models.StatusResep, error) {
	r, err := m.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return r.Status, nil
}

func (m memResep) UpdateStatus(ctx context.Context, id int64, status models.StatusResep, idApoteker *int64, dilayani *time.Time) error {
	m[id].Status = status
	m[id].IDApoteker = idApoteker
	m[id].TanggalDilayani = dilayani
	return nil
}

type memKunjungan map[int64]*models.Kunjungan

func (m memKunjungan) LockByID(ctx context.Context, id int64) (*models.Kunjungan, error) {
	k, ok := m[id]
	if !ok {
		return nil, apperr.NotFound("Kunjungan tidak ditemukan")
	}
	cp := *k
	return &cp, nil
}

func (m memKunjungan) UpdateStatus(ctx context.Context, id int64, st models.StatusKunjungan) error {
	m[id].Status = st
	return nil
}

type fixture struct {
	obat      *memObat
	resep     memResep
	kunjungan memKunjungan
	oc        *ObatController
	rc        *ResepController
}

func newFixture() *fixture {
	now := func() time.Time { return time.Date(2024, 12, 20, 11, 15, 0, 0, time.UTC) }
	f := &fixture{
		obat: &memObat{rows: map[int64]*models.Obat{
			1: {IDObat: 1, KodeObat: "OBT001", NamaObat: "Paracetamol 500mg", Satuan: "tablet", Stok: 500, StokMinimal: 100, IsActive: true},
		}},
		resep: memResep{
			1: {IDResep: 1, NoResep: "RSP-20241220-0001", IDKunjungan: 1, Status: models.ResepPending,
				Detail: []models.ResepDetail{{IDObat: 1, Jumlah: 10, AturanPakai: "3x1"}}},
		},
		kunjungan: memKunjungan{1: {IDKunjungan: 1, Status: models.KunjunganPemeriksaan}},
	}
	f.oc = NewObatController(services.NewObatService(f.obat, passTx{}, zerolog.Nop()))
	f.rc = NewResepController(services.NewResepService(f.resep, f.obat, f.kunjungan, passTx{}, nil, nil, now, zerolog.Nop()))
	return f
}

func put(e *echo.Echo, id, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if user != nil {
		c.Set(string(middlewares.ContextKeyUser), user)
	}
	return c, rec
}

func TestUpdateStatusResep_Selesai(t *testing.T) {
	e := echo.New()
	f := newFixture()

	c, rec := put(e, "1", `{"status":"selesai"}`, apoteker)
	require.NoError(t, f.rc.UpdateStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message string       `json:"message"`
		Data    models.Resep `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Status resep berhasil diupdate", resp.Message)
	assert.Equal(t, models.ResepSelesai, resp.Data.Status)
	require.NotNil(t, resp.Data.IDApoteker)
	assert.Equal(t, apoteker.IDUser, *resp.Data.IDApoteker)

	assert.Equal(t, 490, f.obat.rows[1].Stok)
	assert.Equal(t, models.KunjunganSelesai, f.kunjungan[1].Status)
	require.Len(t, f.obat.logs, 1)
	assert.Equal(t, models.StokKeluar, f.obat.logs[0].Tipe)

	// penyerahan kedua ditolak, stok tidak berkurang lagi
	c, rec = put(e, "1", `{"status":"selesai"}`, apoteker)
	require.NoError(t, f.rc.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Resep sudah selesai")
	assert.Equal(t, 490, f.obat.rows[1].Stok)
}

func TestUpdateStatusResep_Errors(t *testing.T) {
	e := echo.New()
	f := newFixture()

	cases := []struct {
		name string
		id   string
		body string
		user *models.User
		code int
	}{
		{"id bukan angka", "x", `{"status":"diproses"}`, apoteker, http.StatusBadRequest},
		{"json rusak", "1", `{"status":`, apoteker, http.StatusBadRequest},
		{"tanpa login", "1", `{"status":"diproses"}`, nil, http.StatusUnauthorized},
		{"status tidak dikenal", "1", `{"status":"dikirim"}`, apoteker, http.StatusBadRequest},
		{"resep tidak ada", "9", `{"status":"diproses"}`, apoteker, http.StatusNotFound},
		{"diproses", "1", `{"status":"diproses"}`, apoteker, http.StatusOK},
	}
	for _, tc := range cases {
		c, rec := put(e, tc.id, tc.body, tc.user)
		require.NoError(t, f.rc.UpdateStatus(c), tc.name)
		assert.Equal(t, tc.code, rec.Code, tc.name)
	}
	assert.Equal(t, models.ResepDiproses, f.resep[1].Status)
	assert.Equal(t, 500, f.obat.rows[1].Stok)
}

func TestUpdateStok(t *testing.T) {
	e := echo.New()
	f := newFixture()

	c, rec := put(e, "1", `{}`, apoteker)
	require.NoError(t, f.oc.UpdateStok(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stok harus diisi")

	c, rec = put(e, "1", `{"stok":550}`, apoteker)
	require.NoError(t, f.oc.UpdateStok(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 550, f.obat.rows[1].Stok)
	require.Len(t, f.obat.logs, 1)
	assert.Equal(t, models.StokMasuk, f.obat.logs[0].Tipe)
	assert.Equal(t, 50, f.obat.logs[0].Jumlah)

	c, rec = put(e, "1", `{"stok":-5}`, apoteker)
	require.NoError(t, f.oc.UpdateStok(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateObat(t *testing.T) {
	e := echo.New()
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"kodeObat":"OBT009","namaObat":"Vitamin C 50mg","satuan":"tablet","stok":0,"stokMinimal":20,"harga":300}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(string(middlewares.ContextKeyUser), apoteker)

	require.NoError(t, f.oc.CreateObat(c))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Obat berhasil ditambahkan")
	assert.Len(t, f.obat.rows, 2)
	// stok awal nol tidak dicatat
	assert.Empty(t, f.obat.logs)
}
