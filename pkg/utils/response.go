package utils

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
)

// Respond menulis envelope standar {status, message, data}.
func Respond(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, map[string]interface{}{
		"status":  code,
		"message": message,
		"data":    data,
	})
}

// Fail memetakan error alur kerja ke status HTTP. Error internal dicatat
// lengkap di log, klien hanya menerima pesan generik.
func Fail(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	code := kind.HTTPStatus()
	if kind == apperr.KindInternal {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).
			Str("path", c.Path()).
			Msg("internal error")
	}
	return Respond(c, code, apperr.Message(err), nil)
}

// BadRequest adalah jalan pintas untuk payload yang tidak bisa di-bind.
func BadRequest(c echo.Context, message string) error {
	return Respond(c, http.StatusBadRequest, message, nil)
}

// ParamID membaca parameter path numerik, misalnya :id.
func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Parameter %s tidak valid", name)
	}
	return id, nil
}

// QueryInt64 membaca query string numerik opsional; kosong berarti 0.
func QueryInt64(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, apperr.Validation("Query %s tidak valid", name)
	}
	return n, nil
}
