package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c14220110/puskesmas-backend/internal/models"
)

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(KunjunganCreate, models.RolePendaftaran))
	assert.False(t, Allowed(KunjunganCreate, models.RoleDokter))

	assert.True(t, Allowed(ResepStatus, models.RoleApoteker))
	assert.False(t, Allowed(ResepStatus, models.RoleDokter))

	assert.True(t, Allowed(TransaksiVerify, models.RoleKepalaPuskesmas))
	assert.False(t, Allowed(TransaksiVerify, models.RolePendaftaran))

	assert.True(t, Allowed(TransaksiCreate, models.RolePasien))
	assert.False(t, Allowed(TransaksiAdmin, models.RoleKepalaPuskesmas))
}

func TestAllowed_AnyAuthenticated(t *testing.T) {
	for _, r := range []models.Role{models.RoleAdmin, models.RolePasien, models.RoleDokter, models.RoleApoteker} {
		assert.True(t, Allowed(KunjunganRead, r), r)
	}
	assert.False(t, Allowed(KunjunganRead, models.Role("tamu")))
}

func TestAllowed_UnknownOperation(t *testing.T) {
	assert.False(t, Allowed(Operation("hapus.semua"), models.RoleAdmin))
}
