package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type ObatRepository struct {
	DB *sql.DB
}

func NewObatRepository(db *sql.DB) *ObatRepository {
	return &ObatRepository{DB: db}
}

const obatColumns = `o.id_obat, o.kode_obat, o.nama_obat, o.deskripsi, o.satuan, o.stok, o.stok_minimal,
	o.harga, o.is_active, o.created_at, o.updated_at`

func obatDest(o *models.Obat, deskripsi *sql.NullString) []interface{} {
	return []interface{}{&o.IDObat, &o.KodeObat, &o.NamaObat, deskripsi, &o.Satuan, &o.Stok, &o.StokMinimal,
		&o.Harga, &o.IsActive, &o.CreatedAt, &o.UpdatedAt}
}

func scanObat(s scanner) (*models.Obat, error) {
	var o models.Obat
	var deskripsi sql.NullString
	if err := s.Scan(obatDest(&o, &deskripsi)...); err != nil {
		return nil, err
	}
	o.Deskripsi = nullString(deskripsi)
	return &o, nil
}

// List hanya mengembalikan obat aktif, urut nama.
func (r *ObatRepository) List(ctx context.Context, f models.ObatFilter) ([]models.Obat, error) {
	query := `SELECT ` + obatColumns + ` FROM obat o`
	conds := []string{"o.is_active = 1"}
	args := []interface{}{}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		conds = append(conds, "(o.nama_obat LIKE ? OR o.kode_obat LIKE ?)")
		args = append(args, like, like)
	}
	if f.StokRendah {
		conds = append(conds, "o.stok <= o.stok_minimal")
	}
	query += " WHERE " + strings.Join(conds, " AND ") + " ORDER BY o.nama_obat ASC"

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Obat{}
	for rows.Next() {
		o, err := scanObat(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

func (r *ObatRepository) GetByID(ctx context.Context, id int64) (*models.Obat, error) {
	return r.get(ctx, `SELECT `+obatColumns+` FROM obat o WHERE o.id_obat = ?`, id)
}

// LockByID membaca obat dengan FOR UPDATE, dipakai sebelum stok diubah langsung.
func (r *ObatRepository) LockByID(ctx context.Context, id int64) (*models.Obat, error) {
	return r.get(ctx, `SELECT `+obatColumns+` FROM obat o WHERE o.id_obat = ? FOR UPDATE`, id)
}

func (r *ObatRepository) get(ctx context.Context, query string, id int64) (*models.Obat, error) {
	o, err := scanObat(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Obat dengan ID %d tidak ditemukan", id)
	}
	return o, err
}

func (r *ObatRepository) Create(ctx context.Context, o *models.Obat) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO obat (kode_obat, nama_obat, deskripsi, satuan, stok, stok_minimal, harga, is_active)
		 VALUES (?,?,?,?,?,?,?,?)`,
		o.KodeObat, o.NamaObat, o.Deskripsi, o.Satuan, o.Stok, o.StokMinimal, o.Harga, o.IsActive)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "Kode obat sudah terdaftar", err)
		}
		return err
	}
	o.IDObat, err = res.LastInsertId()
	return err
}

// Update mengubah data master obat. Kolom stok sengaja tidak disentuh di sini.
func (r *ObatRepository) Update(ctx context.Context, o *models.Obat) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE obat SET kode_obat = ?, nama_obat = ?, deskripsi = ?, satuan = ?, stok_minimal = ?, harga = ?, is_active = ?
		 WHERE id_obat = ?`,
		o.KodeObat, o.NamaObat, o.Deskripsi, o.Satuan, o.StokMinimal, o.Harga, o.IsActive, o.IDObat)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "Kode obat sudah terdaftar", err)
		}
		return err
	}
	return expectAffected(res, "Obat tidak ditemukan")
}

func (r *ObatRepository) SetStok(ctx context.Context, id int64, stok int) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx, `UPDATE obat SET stok = ? WHERE id_obat = ?`, stok, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "Obat tidak ditemukan")
}

// KurangiStok mengurangi stok secara atomik hanya bila stok masih cukup.
// ok=false berarti stok kurang dan tidak ada baris yang berubah.
func (r *ObatRepository) KurangiStok(ctx context.Context, id int64, jumlah int) (stokAkhir int, ok bool, err error) {
	q := conn(ctx, r.DB)
	res, err := q.ExecContext(ctx,
		`UPDATE obat SET stok = stok - ? WHERE id_obat = ? AND stok >= ?`, jumlah, id, jumlah)
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	if err := q.QueryRowContext(ctx, `SELECT stok FROM obat WHERE id_obat = ?`, id).Scan(&stokAkhir); err != nil {
		return 0, false, err
	}
	return stokAkhir, true, nil
}

func (r *ObatRepository) CreateStokLog(ctx context.Context, l *models.StokLog) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO stok_log (id_obat, tipe, jumlah, stok_awal, stok_akhir, referensi, id_user)
		 VALUES (?,?,?,?,?,?,?)`,
		l.IDObat, l.Tipe, l.Jumlah, l.StokAwal, l.StokAkhir, l.Referensi, l.IDUser)
	if err != nil {
		return err
	}
	l.IDStokLog, err = res.LastInsertId()
	return err
}

func (r *ObatRepository) ListStokLog(ctx context.Context, idObat int64) ([]models.StokLog, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT id_stok_log, id_obat, tipe, jumlah, stok_awal, stok_akhir, referensi, id_user, created_at
		 FROM stok_log WHERE id_obat = ? ORDER BY created_at DESC, id_stok_log DESC`, idObat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.StokLog{}
	for rows.Next() {
		var l models.StokLog
		var ref sql.NullString
		if err := rows.Scan(&l.IDStokLog, &l.IDObat, &l.Tipe, &l.Jumlah, &l.StokAwal, &l.StokAkhir,
			&ref, &l.IDUser, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Referensi = nullString(ref)
		list = append(list, l)
	}
	return list, rows.Err()
}
