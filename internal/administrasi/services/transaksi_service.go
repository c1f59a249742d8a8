package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	amodels "github.com/c14220110/puskesmas-backend/internal/administrasi/models"
	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransaksiStore interface {
	Create(ctx context.Context, t *models.Transaksi) error
	GetByID(ctx context.Context, id int64) (*models.Transaksi, error)
	ExistsForKunjungan(ctx context.Context, idKunjungan int64) (bool, error)
	List(ctx context.Context, f models.TransaksiFilter) ([]models.Transaksi, error)
	Verify(ctx context.Context, id int64, status models.StatusVerifikasi, catatan *string, idVerifikator int64, at time.Time) error
	Update(ctx context.Context, t *models.Transaksi) error
	Delete(ctx context.Context, id int64) error
	LastNoTransaksi(ctx context.Context, prefix string) (string, error)
}

type KunjunganGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Kunjungan, error)
}

type PasienFinder interface {
	GetByCreator(ctx context.Context, userID int64) (*models.Pasien, error)
}

type ResepLister interface {
	ListByKunjungan(ctx context.Context, idKunjungan int64) ([]models.Resep, error)
}

// Tarif tetap per kunjungan, diisi dari config.
type Tarif struct {
	Pendaftaran decimal.Decimal
	Pemeriksaan decimal.Decimal
}

type TransaksiService struct {
	Transaksi TransaksiStore
	Kunjungan KunjunganGetter
	Pasien    PasienFinder
	Resep     ResepLister
	Tx        Transactor
	Tarif     Tarif
	Metrics   *metrics.Metrics
	Now       func() time.Time
	Log       zerolog.Logger
}

func NewTransaksiService(trx TransaksiStore, kunjungan KunjunganGetter, pasien PasienFinder, resep ResepLister,
	tx Transactor, tarif Tarif, m *metrics.Metrics, now func() time.Time, log zerolog.Logger) *TransaksiService {
	return &TransaksiService{
		Transaksi: trx, Kunjungan: kunjungan, Pasien: pasien, Resep: resep,
		Tx: tx, Tarif: tarif, Metrics: m, Now: now, Log: log,
	}
}

// pasienMilik mengembalikan id pasien milik akun role pasien.
// ok=false bila akun belum terhubung ke data pasien mana pun.
func (s *TransaksiService) pasienMilik(ctx context.Context, user *models.User) (int64, bool, error) {
	p, err := s.Pasien.GetByCreator(ctx, user.IDUser)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return p.IDPasien, true, nil
}

func (s *TransaksiService) List(ctx context.Context, f models.TransaksiFilter, user *models.User) ([]models.Transaksi, error) {
	if f.StatusVerifikasi != "" && !f.StatusVerifikasi.Valid() {
		return nil, apperr.Validation("Status verifikasi tidak valid")
	}
	if user.Role == models.RolePasien {
		id, ok, err := s.pasienMilik(ctx, user)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []models.Transaksi{}, nil
		}
		f.IDPasien = id
	}
	return s.Transaksi.List(ctx, f)
}

// Get memuat transaksi beserta resep kunjungannya. Role pasien hanya boleh melihat miliknya.
func (s *TransaksiService) Get(ctx context.Context, id int64, user *models.User) (*models.Transaksi, error) {
	t, err := s.Transaksi.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RolePasien {
		idPasien, ok, err := s.pasienMilik(ctx, user)
		if err != nil {
			return nil, err
		}
		if !ok || idPasien != t.IDPasien {
			return nil, apperr.Forbidden("Forbidden: Anda tidak memiliki akses ke transaksi ini")
		}
	}
	if t.Resep, err = s.Resep.ListByKunjungan(ctx, t.IDKunjungan); err != nil {
		return nil, err
	}
	return t, nil
}

// Biaya menghitung rincian tagihan kunjungan. Biaya obat menjumlahkan
// harga x jumlah dari semua resep yang tidak batal.
func (s *TransaksiService) Biaya(ctx context.Context, idKunjungan int64) (*models.Biaya, error) {
	if _, err := s.Kunjungan.GetByID(ctx, idKunjungan); err != nil {
		return nil, err
	}
	list, err := s.Resep.ListByKunjungan(ctx, idKunjungan)
	if err != nil {
		return nil, err
	}
	obat := decimal.Zero
	for _, r := range list {
		if r.Status == models.ResepBatal {
			continue
		}
		for _, d := range r.Detail {
			if d.Obat == nil || !d.Obat.Harga.Valid {
				continue
			}
			obat = obat.Add(d.Obat.Harga.Decimal.Mul(decimal.NewFromInt(int64(d.Jumlah))))
		}
	}
	b := models.NewBiaya(s.Tarif.Pendaftaran, s.Tarif.Pemeriksaan, obat, decimal.Zero)
	return &b, nil
}

func (s *TransaksiService) Create(ctx context.Context, req amodels.TransaksiRequest, user *models.User) (*models.Transaksi, error) {
	if req.IDKunjungan <= 0 {
		return nil, apperr.Validation("ID kunjungan harus diisi")
	}
	if !req.MetodePembayaran.Valid() {
		return nil, apperr.Validation("Metode pembayaran harus salah satu dari tunai, transfer, debit, bpjs")
	}
	if req.Diskon.IsNegative() {
		return nil, apperr.Validation("Diskon tidak boleh negatif")
	}

	k, err := s.Kunjungan.GetByID(ctx, req.IDKunjungan)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RolePasien {
		idPasien, ok, err := s.pasienMilik(ctx, user)
		if err != nil {
			return nil, err
		}
		if !ok || idPasien != k.IDPasien {
			return nil, apperr.Forbidden("Forbidden: Anda hanya bisa membuat transaksi untuk kunjungan Anda sendiri")
		}
	}

	exists, err := s.Transaksi.ExistsForKunjungan(ctx, k.IDKunjungan)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Transaksi untuk kunjungan ini sudah ada")
	}

	biaya, err := s.Biaya(ctx, k.IDKunjungan)
	if err != nil {
		return nil, err
	}
	if req.Diskon.GreaterThan(biaya.Total) {
		return nil, apperr.Validation("Diskon tidak boleh melebihi total biaya")
	}

	now := s.Now()
	kasir := user.IDUser
	t := &models.Transaksi{
		IDKunjungan:      k.IDKunjungan,
		IDPasien:         k.IDPasien,
		TanggalTransaksi: models.NewTanggal(now),
		BiayaPendaftaran: biaya.BiayaPendaftaran,
		BiayaPemeriksaan: biaya.BiayaPemeriksaan,
		BiayaObat:        biaya.BiayaObat,
		BiayaTindakan:    biaya.BiayaTindakan,
		Diskon:           req.Diskon,
		TotalBiaya:       biaya.Total.Sub(req.Diskon),
		MetodePembayaran: req.MetodePembayaran,
		StatusPembayaran: models.Lunas,
		StatusVerifikasi: models.VerifikasiMenunggu,
		IDKasir:          &kasir,
		Keterangan:       req.Keterangan,
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		last, err := s.Transaksi.LastNoTransaksi(ctx, utils.KodeTransaksi.DayPrefix(now))
		if err != nil {
			return err
		}
		if t.NoTransaksi, err = utils.KodeTransaksi.Next(now, last); err != nil {
			return err
		}
		return s.Transaksi.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.IncTransaksi()
	s.Log.Info().Int64("id_transaksi", t.IDTransaksi).Str("no_transaksi", t.NoTransaksi).
		Int64("id_kunjungan", t.IDKunjungan).Str("total", t.TotalBiaya.String()).Msg("transaksi dibuat")
	return s.Transaksi.GetByID(ctx, t.IDTransaksi)
}

// Verify mencatat keputusan verifikator. Verifikasi ulang diizinkan dan menimpa
// keputusan sebelumnya; kejadian itu dicatat sebagai warning.
func (s *TransaksiService) Verify(ctx context.Context, id int64, req amodels.VerifikasiRequest, user *models.User) (*models.Transaksi, error) {
	if req.StatusVerifikasi != models.VerifikasiDisetujui && req.StatusVerifikasi != models.VerifikasiDitolak {
		return nil, apperr.Validation("Status verifikasi harus disetujui atau ditolak")
	}
	prev, err := s.Transaksi.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Transaksi.Verify(ctx, id, req.StatusVerifikasi, req.CatatanVerifikasi, user.IDUser, s.Now()); err != nil {
		return nil, err
	}
	if prev.StatusVerifikasi != models.VerifikasiMenunggu {
		s.Metrics.IncVerifikasiUlang()
		s.Log.Warn().Int64("id_transaksi", id).Str("sebelumnya", string(prev.StatusVerifikasi)).
			Str("baru", string(req.StatusVerifikasi)).Int64("id_verifikator", user.IDUser).
			Msg("transaksi diverifikasi ulang, keputusan lama ditimpa")
	}
	return s.Transaksi.GetByID(ctx, id)
}

// Update menggabungkan koreksi admin. totalBiaya tetap nilai saat transaksi dibuat.
func (s *TransaksiService) Update(ctx context.Context, id int64, req amodels.UpdateTransaksiRequest) (*models.Transaksi, error) {
	t, err := s.Transaksi.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{req.BiayaPendaftaran, &t.BiayaPendaftaran},
		{req.BiayaPemeriksaan, &t.BiayaPemeriksaan},
		{req.BiayaObat, &t.BiayaObat},
		{req.BiayaTindakan, &t.BiayaTindakan},
		{req.Diskon, &t.Diskon},
	} {
		if f.src == nil {
			continue
		}
		if f.src.IsNegative() {
			return nil, apperr.Validation("Nilai biaya dan diskon tidak boleh negatif")
		}
		*f.dst = *f.src
	}
	if req.MetodePembayaran != nil {
		if !req.MetodePembayaran.Valid() {
			return nil, apperr.Validation("Metode pembayaran tidak valid")
		}
		t.MetodePembayaran = *req.MetodePembayaran
	}
	if req.StatusPembayaran != nil {
		if !req.StatusPembayaran.Valid() {
			return nil, apperr.Validation("Status pembayaran tidak valid")
		}
		t.StatusPembayaran = *req.StatusPembayaran
	}
	if req.Keterangan != nil {
		t.Keterangan = req.Keterangan
	}

	if err := s.Transaksi.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.Transaksi.GetByID(ctx, id)
}

func (s *TransaksiService) Delete(ctx context.Context, id int64) error {
	if err := s.Transaksi.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info().Int64("id_transaksi", id).Msg("transaksi dihapus")
	return nil
}
