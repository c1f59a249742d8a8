package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/puskesmas-backend/config"
	"github.com/c14220110/puskesmas-backend/internal/common/apperr"
	"github.com/c14220110/puskesmas-backend/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser: "root", DBPassword: "secret", DBHost: "db", DBPort: "3306", DBName: "puskesmas_db",
		Location: time.FixedZone("WIB", 7*3600),
	}
	dsn := DSN(cfg)
	assert.Contains(t, dsn, "root:secret@tcp(db:3306)/puskesmas_db")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, IsDuplicate(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicate(errors.New("boom")))
	assert.False(t, IsDuplicate(nil))
}

func TestStatements(t *testing.T) {
	stmts := Statements()
	require.NotEmpty(t, stmts)
	for _, s := range stmts {
		assert.Regexp(t, `(?i)^CREATE TABLE`, s)
	}
}

func TestWithinTx_Commit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObatRepository(db)
	tx := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE obat SET stok = ? WHERE id_obat = ?`)).
		WithArgs(120, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.SetStok(ctx, 1, 120)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	db, mock := newMock(t)
	tx := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	want := apperr.Validation("stok kurang")
	err := tx.WithinTx(context.Background(), func(ctx context.Context) error { return want })
	assert.Same(t, want, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	db, mock := newMock(t)
	tx := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tx.WithinTx(context.Background(), func(ctx context.Context) error { panic("boom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_NestedReusesOuter(t *testing.T) {
	db, mock := newMock(t)
	tx := NewTxRunner(db)

	// satu BEGIN dan satu COMMIT untuk dua level
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return tx.WithinTx(ctx, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKurangiStok(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObatRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE obat SET stok = stok - ? WHERE id_obat = ? AND stok >= ?`)).
		WithArgs(10, int64(1), 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT stok FROM obat WHERE id_obat = ?`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"stok"}).AddRow(490))

	stok, ok, err := repo.KurangiStok(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 490, stok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKurangiStok_TidakCukup(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObatRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE obat SET stok = stok - ?`)).
		WithArgs(10, int64(2), 10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, ok, err := repo.KurangiStok(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObatGetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewObatRepository(db)

	mock.ExpectQuery(`FROM obat o WHERE o.id_obat = \?`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id_obat"}))

	_, err := repo.GetByID(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Obat dengan ID 9 tidak ditemukan", apperr.Message(err))
}

func TestLastKode(t *testing.T) {
	db, mock := newMock(t)
	repo := NewKunjunganRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT no_kunjungan FROM kunjungan WHERE no_kunjungan LIKE ? ORDER BY no_kunjungan DESC LIMIT 1`)).
		WithArgs("KJ-20241220-%").
		WillReturnRows(sqlmock.NewRows([]string{"no_kunjungan"}).AddRow("KJ-20241220-0007"))
	mock.ExpectQuery(`SELECT no_kunjungan FROM kunjungan`).
		WithArgs("KJ-20241221-%").
		WillReturnRows(sqlmock.NewRows([]string{"no_kunjungan"}))

	last, err := repo.LastNoKunjungan(context.Background(), "KJ-20241220-")
	require.NoError(t, err)
	assert.Equal(t, "KJ-20241220-0007", last)

	last, err = repo.LastNoKunjungan(context.Background(), "KJ-20241221-")
	require.NoError(t, err)
	assert.Empty(t, last)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaksiCreate_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTransaksiRepository(db)

	mock.ExpectExec(`INSERT INTO transaksi`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'uq_transaksi_kunjungan'"})

	err := repo.Create(context.Background(), &models.Transaksi{NoTransaksi: "TRX202412200001", IDKunjungan: 7})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Transaksi untuk kunjungan ini sudah ada", apperr.Message(err))
}

func TestTransaksiVerify_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTransaksiRepository(db)
	at := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE transaksi SET status_verifikasi`).
		WithArgs(models.VerifikasiDisetujui, nil, int64(5), at, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Verify(context.Background(), 99, models.VerifikasiDisetujui, nil, 5, at)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTransaksiUpdate_LeavesTotalUntouched(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTransaksiRepository(db)
	ket := "koreksi kasir"
	trx := &models.Transaksi{
		IDTransaksi:      3,
		BiayaPendaftaran: decimal.NewFromInt(10000),
		BiayaPemeriksaan: decimal.NewFromInt(50000),
		BiayaObat:        decimal.NewFromInt(11000),
		BiayaTindakan:    decimal.Zero,
		Diskon:           decimal.NewFromInt(5000),
		TotalBiaya:       decimal.NewFromInt(71000),
		MetodePembayaran: models.BayarTransfer,
		StatusPembayaran: models.Lunas,
		Keterangan:       &ket,
	}

	mock.ExpectExec(`UPDATE transaksi SET biaya_pendaftaran = \?, biaya_pemeriksaan = \?, biaya_obat = \?, biaya_tindakan = \?,\s+diskon = \?, metode_pembayaran = \?, status_pembayaran = \?, keterangan = \?\s+WHERE id_transaksi = \?`).
		WithArgs(trx.BiayaPendaftaran, trx.BiayaPemeriksaan, trx.BiayaObat, trx.BiayaTindakan,
			trx.Diskon, trx.MetodePembayaran, trx.StatusPembayaran, ket, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), trx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLaporanDashboard(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaporanRepository(db)
	hari := models.NewTanggal(time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`SELECT`).
		WithArgs("2024-12-20").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e", "f", "g"}).
			AddRow(3, 42, 2, 1, "135000.00", "60000.00", 1))

	d, err := repo.Dashboard(context.Background(), hari)
	require.NoError(t, err)
	assert.Equal(t, 3, d.KunjunganHariIni)
	assert.Equal(t, 42, d.TotalPasien)
	assert.True(t, decimal.NewFromInt(135000).Equal(d.TotalPembayaran))
	assert.Equal(t, 1, d.JumlahMenungguVerifikasi)
}
