package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

const EventKunjunganUpdate = "kunjungan_update"

type Publisher interface {
	Publish(event string, payload interface{})
}

type ResepStore interface {
	List(ctx context.Context, f models.ResepFilter) ([]models.Resep, error)
	GetByID(ctx context.Context, id int64) (*models.Resep, error)
	LockStatus(ctx context.Context, id int64) (models.StatusResep, error)
	UpdateStatus(ctx context.Context, id int64, status models.StatusResep, idApoteker *int64, dilayani *time.Time) error
}

// StokLedger adalah bagian penyimpanan obat yang dipakai saat resep diserahkan.
type StokLedger interface {
	GetByID(ctx context.Context, id int64) (*models.Obat, error)
	KurangiStok(ctx context.Context, id int64, jumlah int) (int, bool, error)
	CreateStokLog(ctx context.Context, l *models.StokLog) error
}

type KunjunganGate interface {
	LockByID(ctx context.Context, id int64) (*models.Kunjungan, error)
	UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) error
}

type ResepService struct {
	Resep     ResepStore
	Obat      StokLedger
	Kunjungan KunjunganGate
	Tx        Transactor
	Hub       Publisher
	Metrics   *metrics.Metrics
	Now       func() time.Time
	Log       zerolog.Logger
}

func NewResepService(resep ResepStore, obat StokLedger, kunjungan KunjunganGate, tx Transactor,
	hub Publisher, m *metrics.Metrics, now func() time.Time, log zerolog.Logger) *ResepService {
	return &ResepService{Resep: resep, Obat: obat, Kunjungan: kunjungan, Tx: tx, Hub: hub, Metrics: m, Now: now, Log: log}
}

func (s *ResepService) List(ctx context.Context, f models.ResepFilter) ([]models.Resep, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("Status resep tidak valid")
	}
	return s.Resep.List(ctx, f)
}

func (s *ResepService) Get(ctx context.Context, id int64) (*models.Resep, error) {
	return s.Resep.GetByID(ctx, id)
}

// UpdateStatus mengganti status resep. Status selesai berarti obat diserahkan:
// stok tiap baris dikurangi secara bersyarat, dicatat di stok_log, dan kunjungan
// maju ke selesai. Semua terjadi dalam satu transaksi; satu baris yang stoknya
// kurang membatalkan seluruh penyerahan.
func (s *ResepService) UpdateStatus(ctx context.Context, id int64, status models.StatusResep, apoteker *models.User) (*models.Resep, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Status resep tidak valid")
	}

	var (
		resep      *models.Resep
		kunjungan  models.StatusKunjungan
		idKunj     int64
		stokKeluar = map[string]int{}
	)
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.Resep.LockStatus(ctx, id)
		if err != nil {
			return err
		}
		if current == models.ResepSelesai {
			return apperr.Conflict("Resep sudah selesai dan tidak dapat diubah lagi")
		}
		if status != models.ResepSelesai {
			return s.Resep.UpdateStatus(ctx, id, status, nil, nil)
		}

		if resep, err = s.Resep.GetByID(ctx, id); err != nil {
			return err
		}
		k, err := s.Kunjungan.LockByID(ctx, resep.IDKunjungan)
		if err != nil {
			return err
		}
		next, err := models.Transition(k.Status, models.EventResepSelesai)
		if err != nil {
			return err
		}

		for _, d := range resep.Detail {
			akhir, ok, err := s.Obat.KurangiStok(ctx, d.IDObat, d.Jumlah)
			if err != nil {
				return err
			}
			obat, err := s.Obat.GetByID(ctx, d.IDObat)
			if err != nil {
				return err
			}
			if !ok {
				s.Metrics.IncStokTidakCukup()
				return apperr.Validation("Stok obat %s tidak mencukupi. Stok tersedia: %d", obat.NamaObat, obat.Stok)
			}
			ref := resep.NoResep
			if err := s.Obat.CreateStokLog(ctx, &models.StokLog{
				IDObat: d.IDObat, Tipe: models.StokKeluar, Jumlah: d.Jumlah,
				StokAwal: akhir + d.Jumlah, StokAkhir: akhir, Referensi: &ref, IDUser: apoteker.IDUser,
			}); err != nil {
				return err
			}
			stokKeluar[obat.KodeObat] += d.Jumlah
		}

		now := s.Now()
		if err := s.Resep.UpdateStatus(ctx, id, models.ResepSelesai, &apoteker.IDUser, &now); err != nil {
			return err
		}
		kunjungan, idKunj = next, k.IDKunjungan
		return s.Kunjungan.UpdateStatus(ctx, k.IDKunjungan, next)
	})
	if err != nil {
		return nil, err
	}

	log := s.Log.Info().Int64("id_resep", id).Str("status", string(status)).Int64("id_user", apoteker.IDUser)
	if status == models.ResepSelesai {
		s.Metrics.IncResepDilayani()
		for kode, n := range stokKeluar {
			s.Metrics.AddStokKeluar(kode, n)
		}
		log = log.Str("no_resep", resep.NoResep).Str("kunjungan", fmt.Sprintf("%d:%s", idKunj, kunjungan))
		if s.Hub != nil {
			s.Hub.Publish(EventKunjunganUpdate, map[string]interface{}{
				"idKunjungan": idKunj,
				"status":      kunjungan,
			})
		}
	}
	log.Msg("status resep diubah")
	return s.Resep.GetByID(ctx, id)
}
