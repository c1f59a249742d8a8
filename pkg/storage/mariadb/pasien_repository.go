package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type PasienRepository struct {
	DB *sql.DB
}

func NewPasienRepository(db *sql.DB) *PasienRepository {
	return &PasienRepository{DB: db}
}

const pasienColumns = `p.id_pasien, p.no_rekam_medis, p.nik, p.nama_lengkap, p.tanggal_lahir, p.jenis_kelamin,
	p.alamat, p.no_telp, p.status_pembayaran, p.no_bpjs, p.golongan_darah, p.riwayat_alergi,
	p.created_by_id, p.created_at, p.updated_at`

// pasienNulls menampung kolom nullable pasien selama Scan.
type pasienNulls struct {
	noBPJS, golDarah, alergi sql.NullString
}

func pasienDest(p *models.Pasien, n *pasienNulls) []interface{} {
	return []interface{}{&p.IDPasien, &p.NoRekamMedis, &p.NIK, &p.NamaLengkap, &p.TanggalLahir, &p.JenisKelamin,
		&p.Alamat, &p.NoTelp, &p.StatusPembayaran, &n.noBPJS, &n.golDarah, &n.alergi,
		&p.CreatedByID, &p.CreatedAt, &p.UpdatedAt}
}

func (n *pasienNulls) apply(p *models.Pasien) {
	p.NoBPJS = nullString(n.noBPJS)
	p.GolonganDarah = nullString(n.golDarah)
	p.RiwayatAlergi = nullString(n.alergi)
}

func scanPasien(s scanner) (*models.Pasien, error) {
	var p models.Pasien
	var n pasienNulls
	if err := s.Scan(pasienDest(&p, &n)...); err != nil {
		return nil, err
	}
	n.apply(&p)
	return &p, nil
}

func (r *PasienRepository) List(ctx context.Context, f models.PasienFilter) ([]models.Pasien, error) {
	query := `SELECT ` + pasienColumns + ` FROM pasien p`
	conds := []string{}
	args := []interface{}{}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		conds = append(conds, "(p.nama_lengkap LIKE ? OR p.no_rekam_medis LIKE ? OR p.nik LIKE ?)")
		args = append(args, like, like, like)
	}
	if f.StatusPembayaran != "" {
		conds = append(conds, "p.status_pembayaran = ?")
		args = append(args, f.StatusPembayaran)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id_pasien DESC"

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Pasien{}
	for rows.Next() {
		p, err := scanPasien(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *PasienRepository) GetByID(ctx context.Context, id int64) (*models.Pasien, error) {
	row := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+pasienColumns+` FROM pasien p WHERE p.id_pasien = ?`, id)
	p, err := scanPasien(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Pasien tidak ditemukan")
	}
	return p, err
}

// GetByCreator mencari data pasien milik akun user (role pasien).
func (r *PasienRepository) GetByCreator(ctx context.Context, userID int64) (*models.Pasien, error) {
	row := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT `+pasienColumns+` FROM pasien p WHERE p.created_by_id = ? ORDER BY p.id_pasien LIMIT 1`, userID)
	p, err := scanPasien(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Data pasien untuk akun ini tidak ditemukan")
	}
	return p, err
}

// LastNoRekamMedis mengembalikan nomor RM terbesar dengan prefix tertentu, kosong bila belum ada.
func (r *PasienRepository) LastNoRekamMedis(ctx context.Context, prefix string) (string, error) {
	return lastKode(ctx, conn(ctx, r.DB), "pasien", "no_rekam_medis", prefix)
}

func (r *PasienRepository) Create(ctx context.Context, p *models.Pasien) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO pasien (no_rekam_medis, nik, nama_lengkap, tanggal_lahir, jenis_kelamin, alamat, no_telp,
		 status_pembayaran, no_bpjs, golongan_darah, riwayat_alergi, created_by_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.NoRekamMedis, p.NIK, p.NamaLengkap, p.TanggalLahir, p.JenisKelamin, p.Alamat, p.NoTelp,
		p.StatusPembayaran, p.NoBPJS, p.GolonganDarah, p.RiwayatAlergi, p.CreatedByID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "NIK atau nomor rekam medis sudah terdaftar", err)
		}
		return err
	}
	p.IDPasien, err = res.LastInsertId()
	return err
}

func (r *PasienRepository) Update(ctx context.Context, p *models.Pasien) error {
	_, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE pasien SET nik = ?, nama_lengkap = ?, tanggal_lahir = ?, jenis_kelamin = ?, alamat = ?, no_telp = ?,
		 status_pembayaran = ?, no_bpjs = ?, golongan_darah = ?, riwayat_alergi = ?
		 WHERE id_pasien = ?`,
		p.NIK, p.NamaLengkap, p.TanggalLahir, p.JenisKelamin, p.Alamat, p.NoTelp,
		p.StatusPembayaran, p.NoBPJS, p.GolonganDarah, p.RiwayatAlergi, p.IDPasien)
	if IsDuplicate(err) {
		return apperr.Wrap(apperr.KindConflict, "NIK sudah dipakai pasien lain", err)
	}
	return err
}

// lastKode mencari kode tampilan terbesar secara leksikografis untuk prefix.
// table dan column selalu berasal dari konstanta di package ini.
func lastKode(ctx context.Context, q Querier, table, column, prefix string) (string, error) {
	var kode string
	err := q.QueryRowContext(ctx,
		`SELECT `+column+` FROM `+table+` WHERE `+column+` LIKE ? ORDER BY `+column+` DESC LIMIT 1`,
		prefix+"%").Scan(&kode)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return kode, err
}
