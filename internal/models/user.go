package models

import "time"

type Role string

const (
	RoleAdmin           Role = "admin"
	RolePasien          Role = "pasien"
	RolePendaftaran     Role = "pendaftaran"
	RoleDokter          Role = "dokter"
	RoleApoteker        Role = "apoteker"
	RoleKepalaPuskesmas Role = "kepala_puskesmas"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePasien, RolePendaftaran, RoleDokter, RoleApoteker, RoleKepalaPuskesmas:
		return true
	}
	return false
}

type User struct {
	IDUser      int64     `json:"idUser"`
	Username    string    `json:"username"`
	Email       *string   `json:"email"`
	GoogleID    *string   `json:"googleId,omitempty"`
	Password    string    `json:"-"`
	Role        Role      `json:"role"`
	NamaLengkap string    `json:"namaLengkap"`
	NIP         *string   `json:"nip"`
	NoTelp      *string   `json:"noTelp"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserRingkas adalah proyeksi user yang ditempel pada relasi (petugas, dokter, apoteker, kasir).
type UserRingkas struct {
	IDUser      int64   `json:"idUser"`
	Username    string  `json:"username"`
	NamaLengkap string  `json:"namaLengkap"`
	Role        Role    `json:"role"`
	NIP         *string `json:"nip,omitempty"`
}

func (u *User) Ringkas() *UserRingkas {
	if u == nil {
		return nil
	}
	return &UserRingkas{IDUser: u.IDUser, Username: u.Username, NamaLengkap: u.NamaLengkap, Role: u.Role, NIP: u.NIP}
}
