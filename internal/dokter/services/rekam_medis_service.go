package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	dmodels "github.com/c14220110/puskesmas-backend/internal/dokter/models"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(event string, payload interface{})
}

type RekamMedisStore interface {
	Create(ctx context.Context, rm *models.RekamMedis) error
	GetByID(ctx context.Context, id int64) (*models.RekamMedis, error)
	ListByPasien(ctx context.Context, idPasien int64) ([]models.RekamMedis, error)
	Update(ctx context.Context, rm *models.RekamMedis) error
	ExistsForKunjungan(ctx context.Context, idKunjungan int64) (bool, error)
}

// KunjunganGate adalah bagian repository kunjungan yang dibutuhkan untuk memajukan status.
type KunjunganGate interface {
	LockByID(ctx context.Context, id int64) (*models.Kunjungan, error)
	UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) error
}

type RekamMedisService struct {
	RekamMedis RekamMedisStore
	Kunjungan  KunjunganGate
	Tx         Transactor
	Hub        Publisher
	Metrics    *metrics.Metrics
	Log        zerolog.Logger
}

func NewRekamMedisService(rm RekamMedisStore, kunjungan KunjunganGate, tx Transactor, hub Publisher,
	m *metrics.Metrics, log zerolog.Logger) *RekamMedisService {
	return &RekamMedisService{RekamMedis: rm, Kunjungan: kunjungan, Tx: tx, Hub: hub, Metrics: m, Log: log}
}

func (s *RekamMedisService) Get(ctx context.Context, id int64) (*models.RekamMedis, error) {
	return s.RekamMedis.GetByID(ctx, id)
}

func (s *RekamMedisService) ListByPasien(ctx context.Context, idPasien int64) ([]models.RekamMedis, error) {
	return s.RekamMedis.ListByPasien(ctx, idPasien)
}

// Create menulis rekam medis dan memajukan kunjungan terdaftar -> pemeriksaan
// dalam satu transaksi. Penulisnya selalu dokter yang sedang login.
func (s *RekamMedisService) Create(ctx context.Context, req dmodels.RekamMedisRequest, dokter *models.User) (*models.RekamMedis, error) {
	if req.IDKunjungan <= 0 {
		return nil, apperr.Validation("ID kunjungan harus diisi")
	}
	if strings.TrimSpace(req.Diagnosis) == "" {
		return nil, apperr.Validation("Diagnosis harus diisi")
	}

	rm := &models.RekamMedis{
		IDKunjungan:      req.IDKunjungan,
		IDDokter:         dokter.IDUser,
		Anamnesa:         req.Anamnesa,
		PemeriksaanFisik: req.PemeriksaanFisik,
		TekananDarah:     req.TekananDarah,
		BeratBadan:       req.BeratBadan,
		TinggiBadan:      req.TinggiBadan,
		SuhuTubuh:        req.SuhuTubuh,
		Diagnosis:        strings.TrimSpace(req.Diagnosis),
		Tindakan:         req.Tindakan,
		Catatan:          req.Catatan,
	}

	var status models.StatusKunjungan
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		k, err := s.Kunjungan.LockByID(ctx, req.IDKunjungan)
		if err != nil {
			return err
		}
		exists, err := s.RekamMedis.ExistsForKunjungan(ctx, req.IDKunjungan)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("Kunjungan ini sudah memiliki rekam medis")
		}
		if status, err = models.Transition(k.Status, models.EventRekamMedisDibuat); err != nil {
			return err
		}
		if err := s.RekamMedis.Create(ctx, rm); err != nil {
			return err
		}
		return s.Kunjungan.UpdateStatus(ctx, k.IDKunjungan, status)
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.IncRekamMedis()
	s.Log.Info().Int64("id_rekam_medis", rm.IDRekamMedis).Int64("id_kunjungan", rm.IDKunjungan).
		Int64("id_dokter", dokter.IDUser).Msg("rekam medis dibuat")
	if s.Hub != nil {
		s.Hub.Publish("kunjungan_update", map[string]interface{}{
			"idKunjungan": rm.IDKunjungan,
			"status":      status,
		})
	}
	return s.RekamMedis.GetByID(ctx, rm.IDRekamMedis)
}

// Update hanya boleh dilakukan oleh dokter penulis rekam medis.
func (s *RekamMedisService) Update(ctx context.Context, id int64, req dmodels.UpdateRekamMedisRequest, user *models.User) (*models.RekamMedis, error) {
	rm, err := s.RekamMedis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm.IDDokter != user.IDUser {
		return nil, apperr.Forbidden("Anda tidak memiliki akses untuk mengupdate rekam medis ini")
	}

	if req.Anamnesa != nil {
		rm.Anamnesa = *req.Anamnesa
	}
	if req.PemeriksaanFisik != nil {
		rm.PemeriksaanFisik = *req.PemeriksaanFisik
	}
	if req.TekananDarah != nil {
		rm.TekananDarah = req.TekananDarah
	}
	if req.BeratBadan != nil {
		rm.BeratBadan = req.BeratBadan
	}
	if req.TinggiBadan != nil {
		rm.TinggiBadan = req.TinggiBadan
	}
	if req.SuhuTubuh != nil {
		rm.SuhuTubuh = req.SuhuTubuh
	}
	if req.Diagnosis != nil {
		if strings.TrimSpace(*req.Diagnosis) == "" {
			return nil, apperr.Validation("Diagnosis harus diisi")
		}
		rm.Diagnosis = strings.TrimSpace(*req.Diagnosis)
	}
	if req.Tindakan != nil {
		rm.Tindakan = req.Tindakan
	}
	if req.Catatan != nil {
		rm.Catatan = req.Catatan
	}

	if err := s.RekamMedis.Update(ctx, rm); err != nil {
		return nil, err
	}
	return s.RekamMedis.GetByID(ctx, id)
}
