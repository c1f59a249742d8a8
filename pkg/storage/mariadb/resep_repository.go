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

type ResepRepository struct {
	DB *sql.DB
}

func NewResepRepository(db *sql.DB) *ResepRepository {
	return &ResepRepository{DB: db}
}

const resepJoin = `SELECT r.id_resep, r.no_resep, r.id_rekam_medis, r.id_dokter, r.id_apoteker, r.tanggal_resep,
	r.status, r.catatan, r.tanggal_dilayani, r.created_at, r.updated_at, rm.id_kunjungan,
	d.id_user, d.username, d.nama_lengkap, d.role, d.nip,
	a.id_user, a.username, a.nama_lengkap, a.role, a.nip,
	` + pasienColumns + `
	FROM resep r
	JOIN rekam_medis rm ON rm.id_rekam_medis = r.id_rekam_medis
	JOIN kunjungan k ON k.id_kunjungan = rm.id_kunjungan
	JOIN pasien p ON p.id_pasien = k.id_pasien
	JOIN users d ON d.id_user = r.id_dokter
	LEFT JOIN users a ON a.id_user = r.id_apoteker`

func scanResepJoin(s scanner) (*models.Resep, error) {
	var r models.Resep
	var idApoteker sql.NullInt64
	var catatan sql.NullString
	var dilayani sql.NullTime
	var d models.UserRingkas
	var dNIP sql.NullString
	var a ringkasNull
	var p models.Pasien
	var pn pasienNulls

	dest := []interface{}{&r.IDResep, &r.NoResep, &r.IDRekamMedis, &r.IDDokter, &idApoteker, &r.TanggalResep,
		&r.Status, &catatan, &dilayani, &r.CreatedAt, &r.UpdatedAt, &r.IDKunjungan,
		&d.IDUser, &d.Username, &d.NamaLengkap, &d.Role, &dNIP}
	dest = append(dest, a.dest()...)
	dest = append(dest, pasienDest(&p, &pn)...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	r.IDApoteker = nullInt64(idApoteker)
	r.Catatan = nullString(catatan)
	r.TanggalDilayani = nullTime(dilayani)
	d.NIP = nullString(dNIP)
	r.Dokter = &d
	r.Apoteker = a.get()
	pn.apply(&p)
	r.Pasien = &p
	r.Detail = []models.ResepDetail{}
	return &r, nil
}

// loadResep memuat resep sesuai klausa where lalu menempelkan detail dan obatnya.
func loadResep(ctx context.Context, q Querier, where string, args ...interface{}) ([]models.Resep, error) {
	rows, err := q.QueryContext(ctx, resepJoin+` `+where+` ORDER BY r.created_at DESC, r.id_resep DESC`, args...)
	if err != nil {
		return nil, err
	}
	list := []models.Resep{}
	for rows.Next() {
		r, err := scanResepJoin(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, *r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]interface{}, len(list))
	index := make(map[int64]int, len(list))
	for i, r := range list {
		ids[i] = r.IDResep
		index[r.IDResep] = i
	}
	details, err := loadDetail(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range details {
		i := index[d.IDResep]
		list[i].Detail = append(list[i].Detail, d)
	}
	return list, nil
}

func loadDetail(ctx context.Context, q Querier, ids []interface{}) ([]models.ResepDetail, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	rows, err := q.QueryContext(ctx,
		`SELECT rd.id_resep_detail, rd.id_resep, rd.id_obat, rd.jumlah, rd.aturan_pakai, rd.keterangan, `+obatColumns+`
		 FROM resep_detail rd
		 JOIN obat o ON o.id_obat = rd.id_obat
		 WHERE rd.id_resep IN (`+placeholders+`)
		 ORDER BY rd.id_resep, rd.urutan, rd.id_resep_detail`, ids...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ResepDetail
	for rows.Next() {
		var d models.ResepDetail
		var ket sql.NullString
		var o models.Obat
		var deskripsi sql.NullString

		dest := []interface{}{&d.IDResepDetail, &d.IDResep, &d.IDObat, &d.Jumlah, &d.AturanPakai, &ket}
		dest = append(dest, obatDest(&o, &deskripsi)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		d.Keterangan = nullString(ket)
		o.Deskripsi = nullString(deskripsi)
		d.Obat = &o
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create menyimpan header resep dan seluruh detailnya. Pemanggil bertanggung jawab
// membungkusnya dalam WithinTx agar tidak ada header tanpa detail.
func (r *ResepRepository) Create(ctx context.Context, resep *models.Resep) error {
	q := conn(ctx, r.DB)
	res, err := q.ExecContext(ctx,
		`INSERT INTO resep (no_resep, id_rekam_medis, id_dokter, tanggal_resep, status, catatan)
		 VALUES (?,?,?,?,?,?)`,
		resep.NoResep, resep.IDRekamMedis, resep.IDDokter, resep.TanggalResep, resep.Status, resep.Catatan)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "Nomor resep bentrok, silakan ulangi", err)
		}
		return err
	}
	if resep.IDResep, err = res.LastInsertId(); err != nil {
		return err
	}

	for i := range resep.Detail {
		d := &resep.Detail[i]
		d.IDResep = resep.IDResep
		res, err := q.ExecContext(ctx,
			`INSERT INTO resep_detail (id_resep, urutan, id_obat, jumlah, aturan_pakai, keterangan)
			 VALUES (?,?,?,?,?,?)`,
			d.IDResep, i, d.IDObat, d.Jumlah, d.AturanPakai, d.Keterangan)
		if err != nil {
			return err
		}
		if d.IDResepDetail, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ResepRepository) GetByID(ctx context.Context, id int64) (*models.Resep, error) {
	list, err := loadResep(ctx, conn(ctx, r.DB), `WHERE r.id_resep = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperr.NotFound("Resep tidak ditemukan")
	}
	return &list[0], nil
}

// LockStatus mengunci baris resep (FOR UPDATE) dan mengembalikan statusnya saat ini.
func (r *ResepRepository) LockStatus(ctx context.Context, id int64) (models.StatusResep, error) {
	var st models.StatusResep
	err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT status FROM resep WHERE id_resep = ? FOR UPDATE`, id).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.NotFound("Resep tidak ditemukan")
	}
	return st, err
}

func (r *ResepRepository) List(ctx context.Context, f models.ResepFilter) ([]models.Resep, error) {
	conds := []string{}
	args := []interface{}{}
	if f.Status != "" {
		conds = append(conds, "r.status = ?")
		args = append(args, f.Status)
	}
	if !f.Tanggal.IsZero() {
		conds = append(conds, "r.tanggal_resep = ?")
		args = append(args, f.Tanggal)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	return loadResep(ctx, conn(ctx, r.DB), where, args...)
}

func (r *ResepRepository) ListByKunjungan(ctx context.Context, idKunjungan int64) ([]models.Resep, error) {
	return loadResep(ctx, conn(ctx, r.DB), `WHERE rm.id_kunjungan = ?`, idKunjungan)
}

// UpdateStatus mengganti status. Apoteker dan waktu dilayani hanya ditimpa bila tidak nil.
func (r *ResepRepository) UpdateStatus(ctx context.Context, id int64, status models.StatusResep, idApoteker *int64, dilayani *time.Time) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE resep SET status = ?, id_apoteker = COALESCE(?, id_apoteker),
		 tanggal_dilayani = COALESCE(?, tanggal_dilayani) WHERE id_resep = ?`,
		status, idApoteker, dilayani, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "Resep tidak ditemukan")
}

func (r *ResepRepository) LastNoResep(ctx context.Context, prefix string) (string, error) {
	return lastKode(ctx, conn(ctx, r.DB), "resep", "no_resep", prefix)
}
