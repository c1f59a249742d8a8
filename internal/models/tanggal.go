package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	LayoutTanggal = "2006-01-02"
	LayoutJam     = "15:04:05"
)

// Tanggal adalah tanggal kalender tanpa jam (kolom DATE), ditulis "YYYY-MM-DD" di JSON.
type Tanggal struct {
	time.Time
}

func NewTanggal(t time.Time) Tanggal {
	y, m, d := t.Date()
	return Tanggal{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

func ParseTanggal(s string, loc *time.Location) (Tanggal, error) {
	if loc == nil {
		loc = time.UTC
	}
	// Terima juga format ISO lengkap dari frontend, ambil bagian tanggalnya saja.
	if len(s) > len(LayoutTanggal) {
		s = s[:len(LayoutTanggal)]
	}
	t, err := time.ParseInLocation(LayoutTanggal, s, loc)
	if err != nil {
		return Tanggal{}, fmt.Errorf("format tanggal harus YYYY-MM-DD: %q", s)
	}
	return Tanggal{t}, nil
}

func (t Tanggal) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutTanggal)
}

func (t Tanggal) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *Tanggal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = Tanggal{}
		return nil
	}
	v, err := ParseTanggal(s, time.Local)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *Tanggal) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Tanggal{}
	case time.Time:
		*t = NewTanggal(v)
	case []byte:
		return t.Scan(string(v))
	case string:
		p, err := ParseTanggal(v, time.Local)
		if err != nil {
			return err
		}
		*t = p
	default:
		return fmt.Errorf("tanggal: tipe sumber %T tidak didukung", src)
	}
	return nil
}

func (t Tanggal) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.String(), nil
}

// NormalisasiJam menerima "HH:MM" atau "HH:MM:SS" dan selalu mengembalikan "HH:MM:SS".
func NormalisasiJam(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{LayoutJam, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(LayoutJam), nil
		}
	}
	return "", fmt.Errorf("format jam harus HH:MM atau HH:MM:SS: %q", s)
}
