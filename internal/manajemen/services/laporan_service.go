package services

import (
	"context"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type LaporanStore interface {
	Dashboard(ctx context.Context, hariIni models.Tanggal) (*models.Dashboard, error)
	StatistikPasien(ctx context.Context) (*models.StatistikPasien, error)
}

type KunjunganRange interface {
	ListBetween(ctx context.Context, start, end models.Tanggal) ([]models.Kunjungan, error)
}

type ObatLister interface {
	List(ctx context.Context, f models.ObatFilter) ([]models.Obat, error)
}

// LaporanService hanya membaca. Semua angka dihitung dari data saat ini.
type LaporanService struct {
	Laporan        LaporanStore
	KunjunganRange KunjunganRange
	ObatList       ObatLister
	Now            func() time.Time
}

func NewLaporanService(laporan LaporanStore, kunjungan KunjunganRange, obat ObatLister, now func() time.Time) *LaporanService {
	return &LaporanService{Laporan: laporan, KunjunganRange: kunjungan, ObatList: obat, Now: now}
}

func (s *LaporanService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return s.Laporan.Dashboard(ctx, models.NewTanggal(s.Now()))
}

// Kunjungan mengembalikan kunjungan dalam rentang [start, end]. Keduanya kosong berarti semua.
func (s *LaporanService) Kunjungan(ctx context.Context, start, end models.Tanggal) (*models.LaporanKunjungan, error) {
	if start.IsZero() != end.IsZero() {
		return nil, apperr.Validation("startDate dan endDate harus diisi bersamaan")
	}
	if end.Before(start.Time) {
		return nil, apperr.Validation("endDate tidak boleh sebelum startDate")
	}
	list, err := s.KunjunganRange.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := &models.LaporanKunjungan{Data: list}
	out.Statistik.Total = len(list)
	for _, k := range list {
		if k.Pasien == nil {
			continue
		}
		switch k.Pasien.StatusPembayaran {
		case models.PembayaranUmum:
			out.Statistik.Umum++
		case models.PembayaranBPJS:
			out.Statistik.BPJS++
		}
	}
	return out, nil
}

func (s *LaporanService) Pasien(ctx context.Context) (*models.StatistikPasien, error) {
	return s.Laporan.StatistikPasien(ctx)
}

func (s *LaporanService) Obat(ctx context.Context) (*models.LaporanObat, error) {
	list, err := s.ObatList.List(ctx, models.ObatFilter{})
	if err != nil {
		return nil, err
	}
	out := &models.LaporanObat{Data: list}
	out.Statistik.TotalObat = len(list)
	for i := range list {
		if list[i].StokRendah() {
			out.Statistik.StokRendah++
		}
		if list[i].Stok == 0 {
			out.Statistik.StokHabis++
		}
	}
	return out, nil
}
