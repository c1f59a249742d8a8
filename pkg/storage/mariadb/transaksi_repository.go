package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type TransaksiRepository struct {
	DB *sql.DB
}

func NewTransaksiRepository(db *sql.DB) *TransaksiRepository {
	return &TransaksiRepository{DB: db}
}

const transaksiColumns = `t.id_transaksi, t.no_transaksi, t.id_kunjungan, t.id_pasien, t.tanggal_transaksi,
	t.biaya_pendaftaran, t.biaya_pemeriksaan, t.biaya_obat, t.biaya_tindakan, t.diskon, t.total_biaya,
	t.metode_pembayaran, t.status_pembayaran, t.status_verifikasi, t.id_kasir, t.id_verifikator,
	t.keterangan, t.catatan_verifikasi, t.tanggal_verifikasi, t.created_at, t.updated_at`

const transaksiJoin = `SELECT ` + transaksiColumns + `, ` + kunjunganColumns + `, ` + pasienColumns + `,
	ks.id_user, ks.username, ks.nama_lengkap, ks.role, ks.nip,
	v.id_user, v.username, v.nama_lengkap, v.role, v.nip
	FROM transaksi t
	JOIN kunjungan k ON k.id_kunjungan = t.id_kunjungan
	JOIN pasien p ON p.id_pasien = t.id_pasien
	LEFT JOIN users ks ON ks.id_user = t.id_kasir
	LEFT JOIN users v ON v.id_user = t.id_verifikator`

func scanTransaksiJoin(s scanner) (*models.Transaksi, error) {
	var t models.Transaksi
	var idKasir, idVerif sql.NullInt64
	var ket, catatan sql.NullString
	var tglVerif sql.NullTime
	var k models.Kunjungan
	var keluhan sql.NullString
	var p models.Pasien
	var pn pasienNulls
	var kasir, verif ringkasNull

	dest := []interface{}{&t.IDTransaksi, &t.NoTransaksi, &t.IDKunjungan, &t.IDPasien, &t.TanggalTransaksi,
		&t.BiayaPendaftaran, &t.BiayaPemeriksaan, &t.BiayaObat, &t.BiayaTindakan, &t.Diskon, &t.TotalBiaya,
		&t.MetodePembayaran, &t.StatusPembayaran, &t.StatusVerifikasi, &idKasir, &idVerif,
		&ket, &catatan, &tglVerif, &t.CreatedAt, &t.UpdatedAt}
	dest = append(dest, kunjunganDest(&k, &keluhan)...)
	dest = append(dest, pasienDest(&p, &pn)...)
	dest = append(dest, kasir.dest()...)
	dest = append(dest, verif.dest()...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	t.IDKasir = nullInt64(idKasir)
	t.IDVerifikator = nullInt64(idVerif)
	t.Keterangan = nullString(ket)
	t.CatatanVerifikasi = nullString(catatan)
	t.TanggalVerifikasi = nullTime(tglVerif)
	k.Keluhan = nullString(keluhan)
	pn.apply(&p)
	t.Kunjungan = &k
	t.Pasien = &p
	t.Kasir = kasir.get()
	t.Verifikator = verif.get()
	return &t, nil
}

func (r *TransaksiRepository) Create(ctx context.Context, t *models.Transaksi) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO transaksi (no_transaksi, id_kunjungan, id_pasien, tanggal_transaksi, biaya_pendaftaran,
		 biaya_pemeriksaan, biaya_obat, biaya_tindakan, diskon, total_biaya, metode_pembayaran,
		 status_pembayaran, status_verifikasi, id_kasir, keterangan)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.NoTransaksi, t.IDKunjungan, t.IDPasien, t.TanggalTransaksi, t.BiayaPendaftaran,
		t.BiayaPemeriksaan, t.BiayaObat, t.BiayaTindakan, t.Diskon, t.MetodePembayaran,
		t.StatusPembayaran, t.StatusVerifikasi, t.IDKasir, t.Keterangan)
	if err != nil {
		if IsDuplicate(err) {
			// uq_transaksi_kunjungan atau uq_transaksi_no
			return apperr.Wrap(apperr.KindConflict, "Transaksi untuk kunjungan ini sudah ada", err)
		}
		return err
	}
	t.IDTransaksi, err = res.LastInsertId()
	return err
}

func (r *TransaksiRepository) GetByID(ctx context.Context, id int64) (*models.Transaksi, error) {
	t, err := scanTransaksiJoin(conn(ctx, r.DB).QueryRowContext(ctx, transaksiJoin+` WHERE t.id_transaksi = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Transaksi tidak ditemukan")
	}
	return t, err
}

func (r *TransaksiRepository) ExistsForKunjungan(ctx context.Context, idKunjungan int64) (bool, error) {
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transaksi WHERE id_kunjungan = ?`, idKunjungan).Scan(&n)
	return n > 0, err
}

func (r *TransaksiRepository) List(ctx context.Context, f models.TransaksiFilter) ([]models.Transaksi, error) {
	query := transaksiJoin
	conds := []string{}
	args := []interface{}{}
	if f.IDPasien != 0 {
		conds = append(conds, "t.id_pasien = ?")
		args = append(args, f.IDPasien)
	}
	if f.StatusVerifikasi != "" {
		conds = append(conds, "t.status_verifikasi = ?")
		args = append(args, f.StatusVerifikasi)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC, t.id_transaksi DESC"

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Transaksi{}
	for rows.Next() {
		t, err := scanTransaksiJoin(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// Verify menimpa keputusan verifikasi tanpa melihat status sebelumnya.
func (r *TransaksiRepository) Verify(ctx context.Context, id int64, status models.StatusVerifikasi, catatan *string, idVerifikator int64, at time.Time) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE transaksi SET status_verifikasi = ?, catatan_verifikasi = ?, id_verifikator = ?, tanggal_verifikasi = ?
		 WHERE id_transaksi = ?`,
		status, catatan, idVerifikator, at, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "Transaksi tidak ditemukan")
}

// Update menyimpan hasil merge field oleh admin. total_biaya tidak ikut diubah.
func (r *TransaksiRepository) Update(ctx context.Context, t *models.Transaksi) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE transaksi SET biaya_pendaftaran = ?, biaya_pemeriksaan = ?, biaya_obat = ?, biaya_tindakan = ?,
		 diskon = ?, metode_pembayaran = ?, status_pembayaran = ?, keterangan = ?
		 WHERE id_transaksi = ?`,
		t.BiayaPendaftaran, t.BiayaPemeriksaan, t.BiayaObat, t.BiayaTindakan,
		t.Diskon, t.MetodePembayaran, t.StatusPembayaran, t.Keterangan, t.IDTransaksi)
	if err != nil {
		return err
	}
	return expectAffected(res, "Transaksi tidak ditemukan")
}

func (r *TransaksiRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM transaksi WHERE id_transaksi = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "Transaksi tidak ditemukan")
}

func (r *TransaksiRepository) LastNoTransaksi(ctx context.Context, prefix string) (string, error) {
	return lastKode(ctx, conn(ctx, r.DB), "transaksi", "no_transaksi", prefix)
}
