package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type KunjunganRepository struct {
	DB *sql.DB
}

func NewKunjunganRepository(db *sql.DB) *KunjunganRepository {
	return &KunjunganRepository{DB: db}
}

const kunjunganColumns = `k.id_kunjungan, k.no_kunjungan, k.id_pasien, k.tanggal_kunjungan, k.jam_kunjungan,
	k.jenis_kunjungan, k.keluhan, k.status, k.id_petugas_pendaftaran, k.created_at, k.updated_at`

// kunjunganJoin memuat kunjungan beserta pasien dan petugas pendaftarannya.
const kunjunganJoin = `SELECT ` + kunjunganColumns + `, ` + pasienColumns + `,
	u.id_user, u.username, u.nama_lengkap, u.role, u.nip
	FROM kunjungan k
	JOIN pasien p ON p.id_pasien = k.id_pasien
	JOIN users u ON u.id_user = k.id_petugas_pendaftaran`

func kunjunganDest(k *models.Kunjungan, keluhan *sql.NullString) []interface{} {
	return []interface{}{&k.IDKunjungan, &k.NoKunjungan, &k.IDPasien, &k.TanggalKunjungan, &k.JamKunjungan,
		&k.JenisKunjungan, keluhan, &k.Status, &k.IDPetugasPendaftaran, &k.CreatedAt, &k.UpdatedAt}
}

func scanKunjungan(s scanner) (*models.Kunjungan, error) {
	var k models.Kunjungan
	var keluhan sql.NullString
	if err := s.Scan(kunjunganDest(&k, &keluhan)...); err != nil {
		return nil, err
	}
	k.Keluhan = nullString(keluhan)
	return &k, nil
}

func scanKunjunganJoin(s scanner) (*models.Kunjungan, error) {
	var k models.Kunjungan
	var keluhan sql.NullString
	var p models.Pasien
	var pn pasienNulls
	var u models.UserRingkas
	var nip sql.NullString

	dest := kunjunganDest(&k, &keluhan)
	dest = append(dest, pasienDest(&p, &pn)...)
	dest = append(dest, &u.IDUser, &u.Username, &u.NamaLengkap, &u.Role, &nip)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	k.Keluhan = nullString(keluhan)
	pn.apply(&p)
	u.NIP = nullString(nip)
	k.Pasien = &p
	k.PetugasPendaftaran = &u
	return &k, nil
}

func (r *KunjunganRepository) Create(ctx context.Context, k *models.Kunjungan) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO kunjungan (no_kunjungan, id_pasien, tanggal_kunjungan, jam_kunjungan, jenis_kunjungan,
		 keluhan, status, id_petugas_pendaftaran) VALUES (?,?,?,?,?,?,?,?)`,
		k.NoKunjungan, k.IDPasien, k.TanggalKunjungan, k.JamKunjungan, k.JenisKunjungan,
		k.Keluhan, k.Status, k.IDPetugasPendaftaran)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "Nomor kunjungan bentrok, silakan ulangi", err)
		}
		return err
	}
	k.IDKunjungan, err = res.LastInsertId()
	return err
}

func (r *KunjunganRepository) GetByID(ctx context.Context, id int64) (*models.Kunjungan, error) {
	return r.get(ctx, `SELECT `+kunjunganColumns+` FROM kunjungan k WHERE k.id_kunjungan = ?`, id)
}

// LockByID membaca kunjungan dengan SELECT ... FOR UPDATE. Hanya bermakna di dalam WithinTx.
func (r *KunjunganRepository) LockByID(ctx context.Context, id int64) (*models.Kunjungan, error) {
	return r.get(ctx, `SELECT `+kunjunganColumns+` FROM kunjungan k WHERE k.id_kunjungan = ? FOR UPDATE`, id)
}

func (r *KunjunganRepository) get(ctx context.Context, query string, id int64) (*models.Kunjungan, error) {
	k, err := scanKunjungan(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Kunjungan tidak ditemukan")
	}
	return k, err
}

func (r *KunjunganRepository) List(ctx context.Context, f models.KunjunganFilter) ([]models.Kunjungan, error) {
	query := kunjunganJoin
	conds := []string{}
	args := []interface{}{}

	if !f.Tanggal.IsZero() {
		conds = append(conds, "k.tanggal_kunjungan = ?")
		args = append(args, f.Tanggal)
	}
	if f.Status != "" {
		conds = append(conds, "k.status = ?")
		args = append(args, f.Status)
	}
	if f.IDPasien != 0 {
		conds = append(conds, "k.id_pasien = ?")
		args = append(args, f.IDPasien)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY k.tanggal_kunjungan DESC, k.jam_kunjungan DESC, k.id_kunjungan DESC"
	return r.list(ctx, query, args...)
}

// ListBetween dipakai laporan kunjungan. Tanggal kosong berarti tanpa batas.
func (r *KunjunganRepository) ListBetween(ctx context.Context, start, end models.Tanggal) ([]models.Kunjungan, error) {
	query := kunjunganJoin
	args := []interface{}{}
	if !start.IsZero() && !end.IsZero() {
		query += " WHERE k.tanggal_kunjungan BETWEEN ? AND ?"
		args = append(args, start, end)
	}
	query += " ORDER BY k.tanggal_kunjungan DESC, k.id_kunjungan DESC"
	return r.list(ctx, query, args...)
}

func (r *KunjunganRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Kunjungan, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Kunjungan{}
	for rows.Next() {
		k, err := scanKunjunganJoin(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *k)
	}
	return list, rows.Err()
}

func (r *KunjunganRepository) UpdateStatus(ctx context.Context, id int64, status models.StatusKunjungan) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx, `UPDATE kunjungan SET status = ? WHERE id_kunjungan = ?`, status, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "Kunjungan tidak ditemukan")
}

func (r *KunjunganRepository) LastNoKunjungan(ctx context.Context, prefix string) (string, error) {
	return lastKode(ctx, conn(ctx, r.DB), "kunjungan", "no_kunjungan", prefix)
}

// LoadDetail memuat satu kunjungan untuk tampilan detail: pasien, petugas,
// rekam medis beserta dokter, serta resep lengkap dengan obat dan apoteker.
func (r *KunjunganRepository) LoadDetail(ctx context.Context, id int64) (*models.Kunjungan, error) {
	q := conn(ctx, r.DB)
	k, err := scanKunjunganJoin(q.QueryRowContext(ctx, kunjunganJoin+` WHERE k.id_kunjungan = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Kunjungan tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}

	rm, err := scanRekamMedisJoin(q.QueryRowContext(ctx, rekamMedisJoin+` WHERE rm.id_kunjungan = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return k, nil
	}
	if err != nil {
		return nil, err
	}
	if rm.Resep, err = loadResep(ctx, q, `WHERE r.id_rekam_medis = ?`, rm.IDRekamMedis); err != nil {
		return nil, err
	}
	k.RekamMedis = rm
	return k, nil
}

func expectAffected(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(notFound)
	}
	return nil
}
