package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	fmodels "github.com/c14220110/puskesmas-backend/internal/farmasi/models"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ObatStore interface {
	List(ctx context.Context, f models.ObatFilter) ([]models.Obat, error)
	GetByID(ctx context.Context, id int64) (*models.Obat, error)
	LockByID(ctx context.Context, id int64) (*models.Obat, error)
	Create(ctx context.Context, o *models.Obat) error
	Update(ctx context.Context, o *models.Obat) error
	SetStok(ctx context.Context, id int64, stok int) error
	CreateStokLog(ctx context.Context, l *models.StokLog) error
	ListStokLog(ctx context.Context, idObat int64) ([]models.StokLog, error)
}

type ObatService struct {
	Obat ObatStore
	Tx   Transactor
	Log  zerolog.Logger
}

func NewObatService(obat ObatStore, tx Transactor, log zerolog.Logger) *ObatService {
	return &ObatService{Obat: obat, Tx: tx, Log: log}
}

func (s *ObatService) List(ctx context.Context, f models.ObatFilter) ([]models.Obat, error) {
	return s.Obat.List(ctx, f)
}

func (s *ObatService) Get(ctx context.Context, id int64) (*models.Obat, error) {
	return s.Obat.GetByID(ctx, id)
}

// Create menambah master obat. Stok awal yang lebih dari nol dicatat sebagai stok masuk.
func (s *ObatService) Create(ctx context.Context, req fmodels.ObatRequest, user *models.User) (*models.Obat, error) {
	o := &models.Obat{
		KodeObat:    strings.TrimSpace(req.KodeObat),
		NamaObat:    strings.TrimSpace(req.NamaObat),
		Deskripsi:   req.Deskripsi,
		Satuan:      strings.TrimSpace(req.Satuan),
		Stok:        req.Stok,
		StokMinimal: req.StokMinimal,
		Harga:       req.Harga,
		IsActive:    true,
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if o.Stok < 0 {
		return nil, apperr.Validation("Stok tidak boleh negatif")
	}
	if err := validateObat(o); err != nil {
		return nil, err
	}

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Obat.Create(ctx, o); err != nil {
			return err
		}
		if o.Stok == 0 {
			return nil
		}
		ref := "stok awal"
		return s.Obat.CreateStokLog(ctx, &models.StokLog{
			IDObat: o.IDObat, Tipe: models.StokMasuk, Jumlah: o.Stok,
			StokAwal: 0, StokAkhir: o.Stok, Referensi: &ref, IDUser: user.IDUser,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Obat.GetByID(ctx, o.IDObat)
}

func (s *ObatService) Update(ctx context.Context, id int64, req fmodels.UpdateObatRequest) (*models.Obat, error) {
	o, err := s.Obat.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.KodeObat != nil {
		o.KodeObat = strings.TrimSpace(*req.KodeObat)
	}
	if req.NamaObat != nil {
		o.NamaObat = strings.TrimSpace(*req.NamaObat)
	}
	if req.Deskripsi != nil {
		o.Deskripsi = req.Deskripsi
	}
	if req.Satuan != nil {
		o.Satuan = strings.TrimSpace(*req.Satuan)
	}
	if req.StokMinimal != nil {
		o.StokMinimal = *req.StokMinimal
	}
	if req.Harga != nil {
		o.Harga.Decimal, o.Harga.Valid = *req.Harga, true
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if err := validateObat(o); err != nil {
		return nil, err
	}
	if err := s.Obat.Update(ctx, o); err != nil {
		return nil, err
	}
	return s.Obat.GetByID(ctx, id)
}

// SetStok menimpa stok (restock atau stock opname) dan mencatat selisihnya.
func (s *ObatService) SetStok(ctx context.Context, id int64, stok int, user *models.User) (*models.Obat, error) {
	if stok < 0 {
		return nil, apperr.Validation("Stok tidak boleh negatif")
	}
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.Obat.LockByID(ctx, id)
		if err != nil {
			return err
		}
		tipe, jumlah := models.TipePerubahan(o.Stok, stok)
		if jumlah == 0 {
			return nil
		}
		if err := s.Obat.SetStok(ctx, id, stok); err != nil {
			return err
		}
		s.Log.Info().Int64("id_obat", id).Int("stok_awal", o.Stok).Int("stok_akhir", stok).
			Str("tipe", string(tipe)).Msg("stok obat diubah")
		return s.Obat.CreateStokLog(ctx, &models.StokLog{
			IDObat: id, Tipe: tipe, Jumlah: jumlah, StokAwal: o.Stok, StokAkhir: stok, IDUser: user.IDUser,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Obat.GetByID(ctx, id)
}

func (s *ObatService) RiwayatStok(ctx context.Context, id int64) ([]models.StokLog, error) {
	if _, err := s.Obat.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.Obat.ListStokLog(ctx, id)
}

func validateObat(o *models.Obat) error {
	if o.KodeObat == "" || o.NamaObat == "" || o.Satuan == "" {
		return apperr.Validation("Kode obat, nama obat, dan satuan harus diisi")
	}
	if o.StokMinimal < 0 {
		return apperr.Validation("Stok minimal tidak boleh negatif")
	}
	if o.Harga.Valid && o.Harga.Decimal.IsNegative() {
		return apperr.Validation("Harga tidak boleh negatif")
	}
	return nil
}
