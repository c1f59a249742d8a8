package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
	"github.com/c14220110/puskesmas-backend/pkg/utils"
)

// Definisikan tipe kustom untuk context key
type contextKey string

const (
	ContextKeyClaims contextKey = "claims"
	ContextKeyUser   contextKey = "user"
)

// UserLookup memuat ulang user pada setiap request agar user nonaktif langsung tertolak.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

func JWTMiddleware(jm *utils.JWTManager, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "Token tidak ditemukan")
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return unauthorized(c, "Format Authorization harus Bearer <token>")
			}

			claims, err := jm.ValidateToken(parts[1])
			if err != nil {
				return unauthorized(c, "Token tidak valid")
			}

			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if apperr.Is(err, apperr.KindNotFound) {
					return unauthorized(c, "User tidak ditemukan")
				}
				return utils.Fail(c, err)
			}
			if !user.IsActive {
				return unauthorized(c, "User tidak aktif")
			}
			// role di database lebih baru daripada role di token
			claims.Role = string(user.Role)

			c.Set(string(ContextKeyClaims), claims)
			c.Set(string(ContextKeyUser), user)

			ctx := zerolog.Ctx(c.Request().Context()).With().Int64("user_id", user.IDUser).Logger().WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// CurrentUser mengambil user yang sudah diautentikasi oleh JWTMiddleware.
func CurrentUser(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(string(ContextKeyUser)).(*models.User)
	return u, ok && u != nil
}

func unauthorized(c echo.Context, msg string) error {
	return utils.Respond(c, http.StatusUnauthorized, msg, nil)
}
