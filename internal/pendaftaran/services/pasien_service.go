package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
	pmodels "github.com/c14220110/puskesmas-backend/internal/pendaftaran/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

// Transactor menjalankan fn dalam satu transaksi database.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type PasienStore interface {
	List(ctx context.Context, f models.PasienFilter) ([]models.Pasien, error)
	GetByID(ctx context.Context, id int64) (*models.Pasien, error)
	LastNoRekamMedis(ctx context.Context, prefix string) (string, error)
	Create(ctx context.Context, p *models.Pasien) error
	Update(ctx context.Context, p *models.Pasien) error
}

type KunjunganLister interface {
	List(ctx context.Context, f models.KunjunganFilter) ([]models.Kunjungan, error)
}

type PasienService struct {
	Pasien    PasienStore
	Kunjungan KunjunganLister
	Tx        Transactor
	Now       func() time.Time
	Log       zerolog.Logger
}

func NewPasienService(pasien PasienStore, kunjungan KunjunganLister, tx Transactor, now func() time.Time, log zerolog.Logger) *PasienService {
	return &PasienService{Pasien: pasien, Kunjungan: kunjungan, Tx: tx, Now: now, Log: log}
}

func (s *PasienService) List(ctx context.Context, f models.PasienFilter) ([]models.Pasien, error) {
	if f.StatusPembayaran != "" && !f.StatusPembayaran.Valid() {
		return nil, apperr.Validation("Status pembayaran harus umum atau bpjs")
	}
	return s.Pasien.List(ctx, f)
}

// Get mengembalikan pasien beserta riwayat kunjungannya.
func (s *PasienService) Get(ctx context.Context, id int64) (*models.Pasien, error) {
	p, err := s.Pasien.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Kunjungan, err = s.Kunjungan.List(ctx, models.KunjunganFilter{IDPasien: id})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PasienService) Create(ctx context.Context, req pmodels.PasienRequest, petugas *models.User) (*models.Pasien, error) {
	p := &models.Pasien{
		NIK:              strings.TrimSpace(req.NIK),
		NamaLengkap:      strings.TrimSpace(req.NamaLengkap),
		TanggalLahir:     req.TanggalLahir,
		JenisKelamin:     req.JenisKelamin,
		Alamat:           req.Alamat,
		NoTelp:           req.NoTelp,
		StatusPembayaran: req.StatusPembayaran,
		NoBPJS:           req.NoBPJS,
		GolonganDarah:    req.GolonganDarah,
		RiwayatAlergi:    req.RiwayatAlergi,
		CreatedByID:      petugas.IDUser,
	}
	if p.StatusPembayaran == "" {
		p.StatusPembayaran = models.PembayaranUmum
	}
	if err := validatePasien(p); err != nil {
		return nil, err
	}

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		prefix := utils.KodeRekamMedis.DayPrefix(s.Now())
		last, err := s.Pasien.LastNoRekamMedis(ctx, prefix)
		if err != nil {
			return err
		}
		if p.NoRekamMedis, err = utils.KodeRekamMedis.Next(s.Now(), last); err != nil {
			return err
		}
		return s.Pasien.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info().Int64("id_pasien", p.IDPasien).Str("no_rm", p.NoRekamMedis).Msg("pasien terdaftar")
	return s.Pasien.GetByID(ctx, p.IDPasien)
}

// Update menggabungkan field yang dikirim ke data pasien yang ada.
func (s *PasienService) Update(ctx context.Context, id int64, req pmodels.UpdatePasienRequest) (*models.Pasien, error) {
	p, err := s.Pasien.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.NIK != nil {
		p.NIK = strings.TrimSpace(*req.NIK)
	}
	if req.NamaLengkap != nil {
		p.NamaLengkap = strings.TrimSpace(*req.NamaLengkap)
	}
	if req.TanggalLahir != nil {
		p.TanggalLahir = *req.TanggalLahir
	}
	if req.JenisKelamin != nil {
		p.JenisKelamin = *req.JenisKelamin
	}
	if req.Alamat != nil {
		p.Alamat = *req.Alamat
	}
	if req.NoTelp != nil {
		p.NoTelp = *req.NoTelp
	}
	if req.StatusPembayaran != nil {
		p.StatusPembayaran = *req.StatusPembayaran
	}
	if req.NoBPJS != nil {
		p.NoBPJS = req.NoBPJS
	}
	if req.GolonganDarah != nil {
		p.GolonganDarah = req.GolonganDarah
	}
	if req.RiwayatAlergi != nil {
		p.RiwayatAlergi = req.RiwayatAlergi
	}
	if err := validatePasien(p); err != nil {
		return nil, err
	}
	if err := s.Pasien.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Pasien.GetByID(ctx, id)
}

func validatePasien(p *models.Pasien) error {
	if p.NIK == "" || p.NamaLengkap == "" || p.TanggalLahir.IsZero() || p.Alamat == "" {
		return apperr.Validation("NIK, nama lengkap, tanggal lahir, dan alamat harus diisi")
	}
	if !p.JenisKelamin.Valid() {
		return apperr.Validation("Jenis kelamin harus L atau P")
	}
	if !p.StatusPembayaran.Valid() {
		return apperr.Validation("Status pembayaran harus umum atau bpjs")
	}
	return nil
}
