// Package metrics menyediakan metrik Prometheus untuk HTTP dan alur kerja klinik.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics menampung seluruh metrik aplikasi. Method pada *Metrics nil aman
// dipanggil sehingga service bisa diuji tanpa registry.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	KunjunganDibuat  prometheus.Counter
	RekamMedisDibuat prometheus.Counter
	ResepDibuat      prometheus.Counter
	ResepDilayani    prometheus.Counter
	StokKeluar       *prometheus.CounterVec
	TransaksiDibuat  prometheus.Counter
	VerifikasiUlang  prometheus.Counter
	StokTidakCukup   prometheus.Counter
	KodeBentrok      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New membuat dan mendaftarkan semua metrik ke reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),
		KunjunganDibuat: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_kunjungan_created_total",
			Help: "Total kunjungan registered",
		}),
		RekamMedisDibuat: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_rekam_medis_created_total",
			Help: "Total medical records created",
		}),
		ResepDibuat: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_resep_created_total",
			Help: "Total prescriptions created",
		}),
		ResepDilayani: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_resep_fulfilled_total",
			Help: "Total prescriptions fulfilled by pharmacy",
		}),
		StokKeluar: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "puskesmas_stok_keluar_total",
			Help: "Units of medicine dispensed",
		}, []string{"kode_obat"}),
		TransaksiDibuat: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_transaksi_created_total",
			Help: "Total billing transactions created",
		}),
		VerifikasiUlang: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_transaksi_reverified_total",
			Help: "Verifications that overwrote a previous decision",
		}),
		StokTidakCukup: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puskesmas_stok_insufficient_total",
			Help: "Prescription operations rejected for insufficient stock",
		}),
		KodeBentrok: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "puskesmas_display_code_conflicts_total",
			Help: "Display code collisions detected by unique index",
		}, []string{"entity"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.KunjunganDibuat,
		m.RekamMedisDibuat,
		m.ResepDibuat,
		m.ResepDilayani,
		m.StokKeluar,
		m.TransaksiDibuat,
		m.VerifikasiUlang,
		m.StokTidakCukup,
		m.KodeBentrok,
	)
	return m
}

// Handler mengembalikan handler HTTP Prometheus untuk registry ini.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) IncKunjungan() {
	if m != nil {
		m.KunjunganDibuat.Inc()
	}
}

func (m *Metrics) IncRekamMedis() {
	if m != nil {
		m.RekamMedisDibuat.Inc()
	}
}

func (m *Metrics) IncResep() {
	if m != nil {
		m.ResepDibuat.Inc()
	}
}

func (m *Metrics) IncResepDilayani() {
	if m != nil {
		m.ResepDilayani.Inc()
	}
}

func (m *Metrics) AddStokKeluar(kodeObat string, jumlah int) {
	if m != nil {
		m.StokKeluar.WithLabelValues(kodeObat).Add(float64(jumlah))
	}
}

func (m *Metrics) IncTransaksi() {
	if m != nil {
		m.TransaksiDibuat.Inc()
	}
}

func (m *Metrics) IncVerifikasiUlang() {
	if m != nil {
		m.VerifikasiUlang.Inc()
	}
}

func (m *Metrics) IncStokTidakCukup() {
	if m != nil {
		m.StokTidakCukup.Inc()
	}
}

func (m *Metrics) IncKodeBentrok(entity string) {
	if m != nil {
		m.KodeBentrok.WithLabelValues(entity).Inc()
	}
}
