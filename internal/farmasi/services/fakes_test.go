package services

import (
	"context"
	"strings"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

var fixedNow = time.Date(2024, 12, 20, 11, 15, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

var apotekerSiti = &models.User{IDUser: 4, Username: "apoteker", Role: models.RoleApoteker, IsActive: true}

// snapshotter dipakai fakeTx untuk meniru rollback.
type snapshotter interface {
	snapshot() (restore func())
}

type fakeTx struct {
	stores []snapshotter
	calls  int
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, r := range restores {
			r()
		}
		return err
	}
	return nil
}

type fakeHub struct {
	events []string
	last   interface{}
}

func (h *fakeHub) Publish(event string, payload interface{}) {
	h.events = append(h.events, event)
	h.last = payload
}

type fakeObat struct {
	rows map[int64]*models.Obat
	logs []models.StokLog
}

func newFakeObat(obat ...models.Obat) *fakeObat {
	f := &fakeObat{rows: map[int64]*models.Obat{}}
	for i := range obat {
		o := obat[i]
		f.rows[o.IDObat] = &o
	}
	return f
}

func (f *fakeObat) snapshot() func() {
	rows := map[int64]*models.Obat{}
	for id, o := range f.rows {
		cp := *o
		rows[id] = &cp
	}
	logs := append([]models.StokLog(nil), f.logs...)
	return func() { f.rows, f.logs = rows, logs }
}

func (f *fakeObat) List(ctx context.Context, flt models.ObatFilter) ([]models.Obat, error) {
	out := []models.Obat{}
	for _, o := range f.rows {
		if flt.Search != "" && !strings.Contains(strings.ToLower(o.NamaObat), strings.ToLower(flt.Search)) {
			continue
		}
		if flt.StokRendah && !o.StokRendah() {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeObat) GetByID(ctx context.Context, id int64) (*models.Obat, error) {
	o, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Obat dengan ID %d tidak ditemukan", id)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeObat) LockByID(ctx context.Context, id int64) (*models.Obat, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeObat) Create(ctx context.Context, o *models.Obat) error {
	for _, x := range f.rows {
		if x.KodeObat == o.KodeObat {
			return apperr.Conflict("Kode obat sudah terdaftar")
		}
	}
	o.IDObat = int64(len(f.rows) + 1)
	cp := *o
	f.rows[o.IDObat] = &cp
	return nil
}

func (f *fakeObat) Update(ctx context.Context, o *models.Obat) error {
	cur, ok := f.rows[o.IDObat]
	if !ok {
		return apperr.NotFound("Obat dengan ID %d tidak ditemukan", o.IDObat)
	}
	cp := *o
	cp.Stok = cur.Stok
	f.rows[o.IDObat] = &cp
	return nil
}

func (f *fakeObat) SetStok(ctx context.Context, id int64, stok int) error {
	f.rows[id].Stok = stok
	return nil
}

// KurangiStok meniru UPDATE ... WHERE stok >= ?.
func (f *fakeObat) KurangiStok(ctx context.Context, id int64, jumlah int) (int, bool, error) {
	o, ok := f.rows[id]
	if !ok || o.Stok < jumlah {
		return 0, false, nil
	}
	o.Stok -= jumlah
	return o.Stok, true, nil
}

func (f *fakeObat) CreateStokLog(ctx context.Context, l *models.StokLog) error {
	l.IDStokLog = int64(len(f.logs) + 1)
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeObat) ListStokLog(ctx context.Context, idObat int64) ([]models.StokLog, error) {
	out := []models.StokLog{}
	for _, l := range f.logs {
		if l.IDObat == idObat {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeResep struct {
	rows map[int64]*models.Resep
}

func newFakeResep(rs ...models.Resep) *fakeResep {
	f := &fakeResep{rows: map[int64]*models.Resep{}}
	for i := range rs {
		r := rs[i]
		f.rows[r.IDResep] = &r
	}
	return f
}

func (f *fakeResep) snapshot() func() {
	rows := map[int64]*models.Resep{}
	for id, r := range f.rows {
		cp := *r
		rows[id] = &cp
	}
	return func() { f.rows = rows }
}

func (f *fakeResep) List(ctx context.Context, flt models.ResepFilter) ([]models.Resep, error) {
	out := []models.Resep{}
	for _, r := range f.rows {
		if flt.Status != "" && r.Status != flt.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResep) GetByID(ctx context.Context, id int64) (*models.Resep, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Resep tidak ditemukan")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeResep) LockStatus(ctx context.Context, id int64) (models.StatusResep, error) {
	r, ok := f.rows[id]
	if !ok {
		return "", apperr.NotFound("Resep tidak ditemukan")
	}
	return r.Status, nil
}

func (f *fakeResep) UpdateStatus(ctx context.Context, id int64, status models.StatusResep, idApoteker *int64, dilayani *time.Time) error {
	r := f.rows[id]
	r.Status = status
	if idApoteker != nil {
		r.IDApoteker = idApoteker
	}
	if dilayani != nil {
		r.TanggalDilayani = dilayani
	}
	return nil
}

type fakeKunjungan struct {
	rows map[int64]*models.Kunjungan
}

func (f *fakeKunjungan) snapshot() func() {
	rows := map[int64]*models.Kunjungan{}
	for id, k := range f.rows {
		cp := *k
		rows[id] = &cp
	}
	return func() { f.rows = rows }
}

func (f *fakeKunjungan) LockByID(ctx context.Context, id int64) (*models.Kunjungan, error) {
	k, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Kunjungan tidak ditemukan")
	}
	cp := *k
	return &cp, nil
}

func (f *fakeKunjungan) UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) error {
	f.rows[id].Status = status
	return nil
}
