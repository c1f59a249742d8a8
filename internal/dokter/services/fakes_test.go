package services

import (
	"context"
	"strings"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

var fixedNow = time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeHub struct{ n int }

func (h *fakeHub) Publish(event string, payload interface{}) { h.n++ }

type fakeRekamMedis struct {
	rows map[int64]*models.RekamMedis
}

func newFakeRekamMedis(rms ...models.RekamMedis) *fakeRekamMedis {
	f := &fakeRekamMedis{rows: map[int64]*models.RekamMedis{}}
	for i := range rms {
		rm := rms[i]
		f.rows[rm.IDRekamMedis] = &rm
	}
	return f
}

func (f *fakeRekamMedis) Create(ctx context.Context, rm *models.RekamMedis) error {
	rm.IDRekamMedis = int64(len(f.rows) + 1)
	cp := *rm
	f.rows[rm.IDRekamMedis] = &cp
	return nil
}

func (f *fakeRekamMedis) GetByID(ctx context.Context, id int64) (*models.RekamMedis, error) {
	rm, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Rekam medis tidak ditemukan")
	}
	cp := *rm
	return &cp, nil
}

func (f *fakeRekamMedis) ListByPasien(ctx context.Context, idPasien int64) ([]models.RekamMedis, error) {
	return nil, nil
}

func (f *fakeRekamMedis) Update(ctx context.Context, rm *models.RekamMedis) error {
	cp := *rm
	f.rows[rm.IDRekamMedis] = &cp
	return nil
}

func (f *fakeRekamMedis) ExistsForKunjungan(ctx context.Context, idKunjungan int64) (bool, error) {
	for _, rm := range f.rows {
		if rm.IDKunjungan == idKunjungan {
			return true, nil
		}
	}
	return false, nil
}

type fakeKunjungan struct {
	rows map[int64]*models.Kunjungan
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

type fakeObat map[int64]*models.Obat

func (f fakeObat) GetByID(ctx context.Context, id int64) (*models.Obat, error) {
	o, ok := f[id]
	if !ok {
		return nil, apperr.NotFound("Obat dengan ID %d tidak ditemukan", id)
	}
	cp := *o
	return &cp, nil
}

type fakeResep struct {
	rows map[int64]*models.Resep
}

func (f *fakeResep) Create(ctx context.Context, r *models.Resep) error {
	r.IDResep = int64(len(f.rows) + 1)
	cp := *r
	f.rows[r.IDResep] = &cp
	return nil
}

func (f *fakeResep) GetByID(ctx context.Context, id int64) (*models.Resep, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Resep tidak ditemukan")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeResep) LastNoResep(ctx context.Context, prefix string) (string, error) {
	last := ""
	for _, r := range f.rows {
		if strings.HasPrefix(r.NoResep, prefix) && r.NoResep > last {
			last = r.NoResep
		}
	}
	return last, nil
}
