package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	dmodels "github.com/c14220110/puskesmas-backend/internal/dokter/models"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

type ResepWriter interface {
	Create(ctx context.Context, r *models.Resep) error
	GetByID(ctx context.Context, id int64) (*models.Resep, error)
	LastNoResep(ctx context.Context, prefix string) (string, error)
}

type ObatGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Obat, error)
}

type RekamMedisGetter interface {
	GetByID(ctx context.Context, id int64) (*models.RekamMedis, error)
}

type ResepService struct {
	Resep      ResepWriter
	Obat       ObatGetter
	RekamMedis RekamMedisGetter
	Tx         Transactor
	Metrics    *metrics.Metrics
	Now        func() time.Time
	Log        zerolog.Logger
}

func NewResepService(resep ResepWriter, obat ObatGetter, rm RekamMedisGetter, tx Transactor,
	m *metrics.Metrics, now func() time.Time, log zerolog.Logger) *ResepService {
	return &ResepService{Resep: resep, Obat: obat, RekamMedis: rm, Tx: tx, Metrics: m, Now: now, Log: log}
}

// CreateResep:
//   - memastikan rekam medis ada dan setiap baris valid
//   - memeriksa stok per obat (jumlah digabung bila obat sama muncul di beberapa baris)
//   - menulis header dan detail dalam satu transaksi, status pending
//
// Stok hanya diperiksa, tidak dipesan. Pengurangan terjadi saat resep diselesaikan apoteker.
func (s *ResepService) CreateResep(ctx context.Context, req dmodels.ResepRequest, dokter *models.User) (*models.Resep, error) {
	if req.IDRekamMedis <= 0 {
		return nil, apperr.Validation("ID rekam medis harus diisi")
	}
	if len(req.Detail) == 0 {
		return nil, apperr.Validation("Detail resep minimal satu obat")
	}

	total := map[int64]int{}
	order := []int64{}
	for i, d := range req.Detail {
		if d.IDObat <= 0 {
			return nil, apperr.Validation("Detail ke-%d: ID obat harus diisi", i+1)
		}
		if d.Jumlah <= 0 {
			return nil, apperr.Validation("Detail ke-%d: jumlah harus lebih dari 0", i+1)
		}
		if strings.TrimSpace(d.AturanPakai) == "" {
			return nil, apperr.Validation("Detail ke-%d: aturan pakai harus diisi", i+1)
		}
		if _, seen := total[d.IDObat]; !seen {
			order = append(order, d.IDObat)
		}
		total[d.IDObat] += d.Jumlah
	}

	if _, err := s.RekamMedis.GetByID(ctx, req.IDRekamMedis); err != nil {
		return nil, err
	}
	for _, id := range order {
		obat, err := s.Obat.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if total[id] > obat.Stok {
			s.Metrics.IncStokTidakCukup()
			return nil, apperr.Validation("Stok obat %s tidak mencukupi. Stok tersedia: %d", obat.NamaObat, obat.Stok)
		}
	}

	now := s.Now()
	resep := &models.Resep{
		IDRekamMedis: req.IDRekamMedis,
		IDDokter:     dokter.IDUser,
		TanggalResep: models.NewTanggal(now),
		Status:       models.ResepPending,
		Catatan:      req.Catatan,
	}
	for _, d := range req.Detail {
		resep.Detail = append(resep.Detail, models.ResepDetail{
			IDObat:      d.IDObat,
			Jumlah:      d.Jumlah,
			AturanPakai: strings.TrimSpace(d.AturanPakai),
			Keterangan:  d.Keterangan,
		})
	}

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		last, err := s.Resep.LastNoResep(ctx, utils.KodeResep.DayPrefix(now))
		if err != nil {
			return err
		}
		if resep.NoResep, err = utils.KodeResep.Next(now, last); err != nil {
			return err
		}
		return s.Resep.Create(ctx, resep)
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.Metrics.IncKodeBentrok("resep")
		}
		return nil, err
	}

	s.Metrics.IncResep()
	s.Log.Info().Int64("id_resep", resep.IDResep).Str("no_resep", resep.NoResep).
		Int("baris", len(resep.Detail)).Msg("resep dibuat")
	return s.Resep.GetByID(ctx, resep.IDResep)
}
