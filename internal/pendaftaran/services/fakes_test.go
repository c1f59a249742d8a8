package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

var fixedNow = time.Date(2024, 12, 20, 8, 30, 0, 0, time.FixedZone("WIB", 7*3600))

func clock() time.Time { return fixedNow }

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePasien struct {
	rows   map[int64]*models.Pasien
	nextID int64
}

func newFakePasien(ps ...models.Pasien) *fakePasien {
	f := &fakePasien{rows: map[int64]*models.Pasien{}}
	for i := range ps {
		p := ps[i]
		f.rows[p.IDPasien] = &p
		if p.IDPasien > f.nextID {
			f.nextID = p.IDPasien
		}
	}
	return f
}

func (f *fakePasien) List(ctx context.Context, flt models.PasienFilter) ([]models.Pasien, error) {
	out := []models.Pasien{}
	for _, p := range f.rows {
		if flt.StatusPembayaran != "" && p.StatusPembayaran != flt.StatusPembayaran {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePasien) GetByID(ctx context.Context, id int64) (*models.Pasien, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Pasien tidak ditemukan")
	}
	cp := *p
	return &cp, nil
}

func (f *fakePasien) LastNoRekamMedis(ctx context.Context, prefix string) (string, error) {
	last := ""
	for _, p := range f.rows {
		if strings.HasPrefix(p.NoRekamMedis, prefix) && p.NoRekamMedis > last {
			last = p.NoRekamMedis
		}
	}
	return last, nil
}

func (f *fakePasien) Create(ctx context.Context, p *models.Pasien) error {
	for _, x := range f.rows {
		if x.NIK == p.NIK {
			return apperr.Conflict("NIK atau nomor rekam medis sudah terdaftar")
		}
	}
	f.nextID++
	p.IDPasien = f.nextID
	cp := *p
	f.rows[p.IDPasien] = &cp
	return nil
}

func (f *fakePasien) Update(ctx context.Context, p *models.Pasien) error {
	cp := *p
	f.rows[p.IDPasien] = &cp
	return nil
}

type fakeKunjungan struct {
	rows   map[int64]*models.Kunjungan
	nextID int64
}

func newFakeKunjungan(ks ...models.Kunjungan) *fakeKunjungan {
	f := &fakeKunjungan{rows: map[int64]*models.Kunjungan{}}
	for i := range ks {
		k := ks[i]
		f.rows[k.IDKunjungan] = &k
		if k.IDKunjungan > f.nextID {
			f.nextID = k.IDKunjungan
		}
	}
	return f
}

func (f *fakeKunjungan) Create(ctx context.Context, k *models.Kunjungan) error {
	for _, x := range f.rows {
		if x.NoKunjungan == k.NoKunjungan {
			return apperr.Conflict("Nomor kunjungan bentrok, silakan ulangi")
		}
	}
	f.nextID++
	k.IDKunjungan = f.nextID
	cp := *k
	f.rows[k.IDKunjungan] = &cp
	return nil
}

func (f *fakeKunjungan) GetByID(ctx context.Context, id int64) (*models.Kunjungan, error) {
	k, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Kunjungan tidak ditemukan")
	}
	cp := *k
	return &cp, nil
}

func (f *fakeKunjungan) LockByID(ctx context.Context, id int64) (*models.Kunjungan, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeKunjungan) LoadDetail(ctx context.Context, id int64) (*models.Kunjungan, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeKunjungan) List(ctx context.Context, flt models.KunjunganFilter) ([]models.Kunjungan, error) {
	out := []models.Kunjungan{}
	for _, k := range f.rows {
		if flt.IDPasien != 0 && k.IDPasien != flt.IDPasien {
			continue
		}
		if flt.Status != "" && k.Status != flt.Status {
			continue
		}
		out = append(out, *k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDKunjungan > out[j].IDKunjungan })
	return out, nil
}

func (f *fakeKunjungan) UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) error {
	k, ok := f.rows[id]
	if !ok {
		return apperr.NotFound("Kunjungan tidak ditemukan")
	}
	k.Status = status
	return nil
}

func (f *fakeKunjungan) LastNoKunjungan(ctx context.Context, prefix string) (string, error) {
	last := ""
	for _, k := range f.rows {
		if strings.HasPrefix(k.NoKunjungan, prefix) && k.NoKunjungan > last {
			last = k.NoKunjungan
		}
	}
	return last, nil
}

type published struct {
	event   string
	payload interface{}
}

type fakeHub struct{ events []published }

func (h *fakeHub) Publish(event string, payload interface{}) {
	h.events = append(h.events, published{event, payload})
}
