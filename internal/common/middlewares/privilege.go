package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/puskesmas-backend/internal/common/rbac"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

// Authorize memeriksa sekali, sebelum handler dijalankan, apakah role user
// termasuk dalam himpunan role operasi op.
func Authorize(op rbac.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return utils.Respond(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
			}
			if !rbac.Allowed(op, user.Role) {
				return utils.Respond(c, http.StatusForbidden, "Anda tidak memiliki hak akses", nil)
			}
			return next(c)
		}
	}
}
