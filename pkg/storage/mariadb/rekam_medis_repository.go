package mariadb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type RekamMedisRepository struct {
	DB *sql.DB
}

func NewRekamMedisRepository(db *sql.DB) *RekamMedisRepository {
	return &RekamMedisRepository{DB: db}
}

const rekamMedisColumns = `rm.id_rekam_medis, rm.id_kunjungan, rm.id_dokter, rm.anamnesa, rm.pemeriksaan_fisik,
	rm.tekanan_darah, rm.berat_badan, rm.tinggi_badan, rm.suhu_tubuh, rm.diagnosis, rm.tindakan, rm.catatan,
	rm.created_at, rm.updated_at`

const rekamMedisJoin = `SELECT ` + rekamMedisColumns + `,
	d.id_user, d.username, d.nama_lengkap, d.role, d.nip
	FROM rekam_medis rm
	JOIN users d ON d.id_user = rm.id_dokter`

type rekamMedisNulls struct {
	tekanan, tindakan, catatan sql.NullString
	berat, tinggi, suhu        sql.NullFloat64
}

func rekamMedisDest(rm *models.RekamMedis, n *rekamMedisNulls) []interface{} {
	return []interface{}{&rm.IDRekamMedis, &rm.IDKunjungan, &rm.IDDokter, &rm.Anamnesa, &rm.PemeriksaanFisik,
		&n.tekanan, &n.berat, &n.tinggi, &n.suhu, &rm.Diagnosis, &n.tindakan, &n.catatan,
		&rm.CreatedAt, &rm.UpdatedAt}
}

func (n *rekamMedisNulls) apply(rm *models.RekamMedis) {
	rm.TekananDarah = nullString(n.tekanan)
	rm.BeratBadan = nullFloat(n.berat)
	rm.TinggiBadan = nullFloat(n.tinggi)
	rm.SuhuTubuh = nullFloat(n.suhu)
	rm.Tindakan = nullString(n.tindakan)
	rm.Catatan = nullString(n.catatan)
}

func scanRekamMedisJoin(s scanner) (*models.RekamMedis, error) {
	var rm models.RekamMedis
	var n rekamMedisNulls
	var d models.UserRingkas
	var nip sql.NullString

	dest := append(rekamMedisDest(&rm, &n), &d.IDUser, &d.Username, &d.NamaLengkap, &d.Role, &nip)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	n.apply(&rm)
	d.NIP = nullString(nip)
	rm.Dokter = &d
	return &rm, nil
}

func (r *RekamMedisRepository) Create(ctx context.Context, rm *models.RekamMedis) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO rekam_medis (id_kunjungan, id_dokter, anamnesa, pemeriksaan_fisik, tekanan_darah,
		 berat_badan, tinggi_badan, suhu_tubuh, diagnosis, tindakan, catatan)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rm.IDKunjungan, rm.IDDokter, rm.Anamnesa, rm.PemeriksaanFisik, rm.TekananDarah,
		rm.BeratBadan, rm.TinggiBadan, rm.SuhuTubuh, rm.Diagnosis, rm.Tindakan, rm.Catatan)
	if err != nil {
		// unique index id_kunjungan menangkap dua dokter yang menulis bersamaan
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "Kunjungan ini sudah memiliki rekam medis", err)
		}
		return err
	}
	rm.IDRekamMedis, err = res.LastInsertId()
	return err
}

func (r *RekamMedisRepository) GetByID(ctx context.Context, id int64) (*models.RekamMedis, error) {
	return r.getJoin(ctx, `WHERE rm.id_rekam_medis = ?`, id)
}

func (r *RekamMedisRepository) getJoin(ctx context.Context, where string, arg int64) (*models.RekamMedis, error) {
	q := conn(ctx, r.DB)
	rm, err := scanRekamMedisJoin(q.QueryRowContext(ctx, rekamMedisJoin+` `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Rekam medis tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}
	if rm.Resep, err = loadResep(ctx, q, `WHERE r.id_rekam_medis = ?`, rm.IDRekamMedis); err != nil {
		return nil, err
	}
	return rm, nil
}

// ListByPasien mengembalikan riwayat rekam medis seorang pasien, terbaru lebih dulu.
func (r *RekamMedisRepository) ListByPasien(ctx context.Context, idPasien int64) ([]models.RekamMedis, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT `+rekamMedisColumns+`, d.id_user, d.username, d.nama_lengkap, d.role, d.nip, `+kunjunganColumns+`
		 FROM rekam_medis rm
		 JOIN users d ON d.id_user = rm.id_dokter
		 JOIN kunjungan k ON k.id_kunjungan = rm.id_kunjungan
		 WHERE k.id_pasien = ?
		 ORDER BY rm.created_at DESC, rm.id_rekam_medis DESC`, idPasien)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.RekamMedis{}
	for rows.Next() {
		var rm models.RekamMedis
		var n rekamMedisNulls
		var d models.UserRingkas
		var nip sql.NullString
		var k models.Kunjungan
		var keluhan sql.NullString

		dest := append(rekamMedisDest(&rm, &n), &d.IDUser, &d.Username, &d.NamaLengkap, &d.Role, &nip)
		dest = append(dest, kunjunganDest(&k, &keluhan)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		n.apply(&rm)
		d.NIP = nullString(nip)
		k.Keluhan = nullString(keluhan)
		rm.Dokter = &d
		rm.Kunjungan = &k
		list = append(list, rm)
	}
	return list, rows.Err()
}

func (r *RekamMedisRepository) Update(ctx context.Context, rm *models.RekamMedis) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE rekam_medis SET anamnesa = ?, pemeriksaan_fisik = ?, tekanan_darah = ?, berat_badan = ?,
		 tinggi_badan = ?, suhu_tubuh = ?, diagnosis = ?, tindakan = ?, catatan = ?
		 WHERE id_rekam_medis = ?`,
		rm.Anamnesa, rm.PemeriksaanFisik, rm.TekananDarah, rm.BeratBadan,
		rm.TinggiBadan, rm.SuhuTubuh, rm.Diagnosis, rm.Tindakan, rm.Catatan, rm.IDRekamMedis)
	if err != nil {
		return err
	}
	return expectAffected(res, "Rekam medis tidak ditemukan")
}

func (r *RekamMedisRepository) ExistsForKunjungan(ctx context.Context, idKunjungan int64) (bool, error) {
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rekam_medis WHERE id_kunjungan = ?`, idKunjungan).Scan(&n)
	return n > 0, err
}
