package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id_user, username, email, google_id, password, role, nama_lengkap, nip, no_telp, is_active, created_at, updated_at`

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	var email, googleID, nip, noTelp sql.NullString
	err := s.Scan(&u.IDUser, &u.Username, &email, &googleID, &u.Password, &u.Role,
		&u.NamaLengkap, &nip, &noTelp, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Email = nullString(email)
	u.GoogleID = nullString(googleID)
	u.NIP = nullString(nip)
	u.NoTelp = nullString(noTelp)
	return &u, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	row := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("User tidak ditemukan")
	}
	return u, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "id_user = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.getOne(ctx, "google_id = ?", googleID)
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		`INSERT INTO users (username, email, google_id, password, role, nama_lengkap, nip, no_telp, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		u.Username, u.Email, u.GoogleID, u.Password, u.Role, u.NamaLengkap, u.NIP, u.NoTelp, u.IsActive)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Wrap(apperr.KindConflict, "Username atau email sudah terdaftar", err)
		}
		return err
	}
	u.IDUser, err = res.LastInsertId()
	return err
}

func (r *UserRepository) LinkGoogleID(ctx context.Context, id int64, googleID string) error {
	_, err := conn(ctx, r.DB).ExecContext(ctx, `UPDATE users SET google_id = ? WHERE id_user = ?`, googleID, id)
	return err
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func nullTime(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

// ringkasNull menampung kolom user dari LEFT JOIN (kasir, verifikator, apoteker).
type ringkasNull struct {
	id                        sql.NullInt64
	username, nama, role, nip sql.NullString
}

func (n *ringkasNull) dest() []interface{} {
	return []interface{}{&n.id, &n.username, &n.nama, &n.role, &n.nip}
}

func (n *ringkasNull) get() *models.UserRingkas {
	if !n.id.Valid {
		return nil
	}
	return &models.UserRingkas{
		IDUser:      n.id.Int64,
		Username:    n.username.String,
		NamaLengkap: n.nama.String,
		Role:        models.Role(n.role.String),
		NIP:         nullString(n.nip),
	}
}
