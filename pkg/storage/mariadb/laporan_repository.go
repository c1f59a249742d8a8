package mariadb

import (
	"context"
	"database/sql"

	"github.com/c14220110/puskesmas-backend/internal/models"
)

// LaporanRepository hanya membaca agregat, tidak pernah menulis.
type LaporanRepository struct {
	DB *sql.DB
}

func NewLaporanRepository(db *sql.DB) *LaporanRepository {
	return &LaporanRepository{DB: db}
}

func (r *LaporanRepository) Dashboard(ctx context.Context, hariIni models.Tanggal) (*models.Dashboard, error) {
	var d models.Dashboard
	err := conn(ctx, r.DB).QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM kunjungan WHERE tanggal_kunjungan = ?),
			(SELECT COUNT(*) FROM pasien),
			(SELECT COUNT(*) FROM resep WHERE status = 'pending'),
			(SELECT COUNT(*) FROM obat WHERE is_active = 1 AND stok <= stok_minimal),
			(SELECT COALESCE(SUM(total_biaya), 0) FROM transaksi
				WHERE status_pembayaran = 'lunas' AND status_verifikasi = 'disetujui'),
			(SELECT COALESCE(SUM(total_biaya), 0) FROM transaksi WHERE status_verifikasi = 'menunggu'),
			(SELECT COUNT(*) FROM transaksi WHERE status_verifikasi = 'menunggu')`,
		hariIni,
	).Scan(&d.KunjunganHariIni, &d.TotalPasien, &d.ResepPending, &d.ObatStokRendah,
		&d.TotalPembayaran, &d.PembayaranMenunggu, &d.JumlahMenungguVerifikasi)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *LaporanRepository) StatistikPasien(ctx context.Context) (*models.StatistikPasien, error) {
	var s models.StatistikPasien
	err := conn(ctx, r.DB).QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(status_pembayaran = 'umum'), 0),
			COALESCE(SUM(status_pembayaran = 'bpjs'), 0),
			COALESCE(SUM(jenis_kelamin = 'L'), 0),
			COALESCE(SUM(jenis_kelamin = 'P'), 0)
		FROM pasien`,
	).Scan(&s.Total, &s.Umum, &s.BPJS, &s.LakiLaki, &s.Perempuan)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
