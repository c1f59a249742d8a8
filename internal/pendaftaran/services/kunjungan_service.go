package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	"github.com/c14220110/puskesmas-backend/internal/models"
	pmodels "github.com/c14220110/puskesmas-backend/internal/pendaftaran/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

// EventKunjunganUpdate dikirim ke papan antrian setiap kali kunjungan berubah.
const EventKunjunganUpdate = "kunjungan_update"

// Publisher menyiarkan event ke klien websocket.
type Publisher interface {
	Publish(event string, payload interface{})
}

type KunjunganStore interface {
	Create(ctx context.Context, k *models.Kunjungan) error
	GetByID(ctx context.Context, id int64) (*models.Kunjungan, error)
	LockByID(ctx context.Context, id int64) (*models.Kunjungan, error)
	List(ctx context.Context, f models.KunjunganFilter) ([]models.Kunjungan, error)
	UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) error
	LastNoKunjungan(ctx context.Context, prefix string) (string, error)
	LoadDetail(ctx context.Context, id int64) (*models.Kunjungan, error)
}

type PasienGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Pasien, error)
}

type KunjunganService struct {
	Kunjungan KunjunganStore
	Pasien    PasienGetter
	Tx        Transactor
	Hub       Publisher
	Metrics   *metrics.Metrics
	Now       func() time.Time
	Log       zerolog.Logger
}

func NewKunjunganService(kunjungan KunjunganStore, pasien PasienGetter, tx Transactor, hub Publisher,
	m *metrics.Metrics, now func() time.Time, log zerolog.Logger) *KunjunganService {
	return &KunjunganService{Kunjungan: kunjungan, Pasien: pasien, Tx: tx, Hub: hub, Metrics: m, Now: now, Log: log}
}

func (s *KunjunganService) List(ctx context.Context, f models.KunjunganFilter) ([]models.Kunjungan, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("Status kunjungan tidak valid")
	}
	return s.Kunjungan.List(ctx, f)
}

func (s *KunjunganService) Get(ctx context.Context, id int64) (*models.Kunjungan, error) {
	return s.Kunjungan.LoadDetail(ctx, id)
}

// Create mendaftarkan kunjungan baru berstatus terdaftar dengan nomor KJ-YYYYMMDD-NNNN.
func (s *KunjunganService) Create(ctx context.Context, req pmodels.KunjunganRequest, petugas *models.User) (*models.Kunjungan, error) {
	if req.IDPasien <= 0 {
		return nil, apperr.Validation("ID pasien harus diisi")
	}
	now := s.Now()

	k := &models.Kunjungan{
		IDPasien:             req.IDPasien,
		TanggalKunjungan:     req.TanggalKunjungan,
		JenisKunjungan:       req.JenisKunjungan,
		Keluhan:              req.Keluhan,
		Status:               models.KunjunganTerdaftar,
		IDPetugasPendaftaran: petugas.IDUser,
	}
	if k.TanggalKunjungan.IsZero() {
		k.TanggalKunjungan = models.NewTanggal(now)
	}
	if k.JenisKunjungan == "" {
		k.JenisKunjungan = models.RawatJalan
	}
	if !k.JenisKunjungan.Valid() {
		return nil, apperr.Validation("Jenis kunjungan harus rawat_jalan, kontrol, atau darurat")
	}
	if req.JamKunjungan == "" {
		k.JamKunjungan = now.Format(models.LayoutJam)
	} else {
		jam, err := models.NormalisasiJam(req.JamKunjungan)
		if err != nil {
			return nil, apperr.Validation("Format jam kunjungan harus HH:MM")
		}
		k.JamKunjungan = jam
	}

	if _, err := s.Pasien.GetByID(ctx, req.IDPasien); err != nil {
		return nil, err
	}

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		last, err := s.Kunjungan.LastNoKunjungan(ctx, utils.KodeKunjungan.DayPrefix(now))
		if err != nil {
			return err
		}
		if k.NoKunjungan, err = utils.KodeKunjungan.Next(now, last); err != nil {
			return err
		}
		return s.Kunjungan.Create(ctx, k)
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.Metrics.IncKodeBentrok("kunjungan")
		}
		return nil, err
	}

	s.Metrics.IncKunjungan()
	s.Log.Info().Int64("id_kunjungan", k.IDKunjungan).Str("no_kunjungan", k.NoKunjungan).
		Int64("id_pasien", k.IDPasien).Msg("kunjungan terdaftar")

	saved, err := s.Kunjungan.LoadDetail(ctx, k.IDKunjungan)
	if err != nil {
		return nil, err
	}
	s.publish(saved)
	return saved, nil
}

// UpdateStatus adalah koreksi manual: status apa pun yang valid diterima tanpa
// efek samping ke entitas lain.
func (s *KunjunganService) UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) (*models.Kunjungan, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Status kunjungan tidak valid")
	}
	if err := s.Kunjungan.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	k, err := s.Kunjungan.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Log.Info().Int64("id_kunjungan", id).Str("status", string(status)).Msg("status kunjungan diubah manual")
	s.publish(k)
	return k, nil
}

// Cancel membatalkan kunjungan yang belum selesai.
func (s *KunjunganService) Cancel(ctx context.Context, id int64) (*models.Kunjungan, error) {
	var k *models.Kunjungan
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if k, err = s.Kunjungan.LockByID(ctx, id); err != nil {
			return err
		}
		next, err := models.Transition(k.Status, models.EventDibatalkan)
		if err != nil {
			return err
		}
		k.Status = next
		return s.Kunjungan.UpdateStatus(ctx, id, next)
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info().Int64("id_kunjungan", id).Msg("kunjungan dibatalkan")
	s.publish(k)
	return k, nil
}

func (s *KunjunganService) publish(k *models.Kunjungan) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(EventKunjunganUpdate, k)
}
