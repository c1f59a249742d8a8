package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
)

// ErrKodeHabis dikembalikan bila nomor urut melebihi lebar digit.
var ErrKodeHabis = apperr.Conflict("Nomor urut harian sudah mencapai batas")

// KodeFormat menggambarkan nomor tampilan berurutan, misalnya KJ-20241220-0001.
// Harian=true berarti urutan dimulai ulang setiap tanggal.
type KodeFormat struct {
	Prefix    string
	Separator string
	Width     int
	Harian    bool
}

var (
	KodeKunjungan  = KodeFormat{Prefix: "KJ", Separator: "-", Width: 4, Harian: true}
	KodeResep      = KodeFormat{Prefix: "RSP", Separator: "-", Width: 4, Harian: true}
	KodeTransaksi  = KodeFormat{Prefix: "TRX", Width: 4, Harian: true}
	KodeRekamMedis = KodeFormat{Prefix: "RM", Separator: "-", Width: 6}
)

// DayPrefix adalah bagian kode sebelum nomor urut untuk tanggal day.
// Dipakai repository sebagai pola LIKE untuk mencari kode terakhir.
func (f KodeFormat) DayPrefix(day time.Time) string {
	if !f.Harian {
		return f.Prefix + f.Separator
	}
	return f.Prefix + f.Separator + day.Format("20060102") + f.Separator
}

// Next menghitung kode berikutnya dari kode terakhir yang sudah ada.
// last kosong berarti belum ada kode untuk hari itu, urutan dimulai dari 1.
func (f KodeFormat) Next(day time.Time, last string) (string, error) {
	prefix := f.DayPrefix(day)
	seq := 1
	if last != "" {
		if !strings.HasPrefix(last, prefix) {
			return "", fmt.Errorf("kode %q tidak sesuai pola %s", last, prefix)
		}
		n, err := strconv.Atoi(last[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("kode %q: nomor urut tidak valid", last)
		}
		seq = n + 1
	}
	if len(strconv.Itoa(seq)) > f.Width {
		return "", ErrKodeHabis
	}
	return fmt.Sprintf("%s%0*d", prefix, f.Width, seq), nil
}
