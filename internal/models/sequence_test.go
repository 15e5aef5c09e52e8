package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return sqldb, gormdb, mock
}

func TestSequenceNumberFormats(t *testing.T) {
	day := time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "CK202508310001", SequenceNumber("CK", day, 1, 4))
	assert.Equal(t, "CSTM202508310042", SequenceNumber("CSTM", day, 42, 4))
	assert.Equal(t, "GB202508319999", SequenceNumber("GB", day, 9999, 4))
	assert.Equal(t, "LC20250831007", SequenceNumber("LC", day, 7, 3))
	// Overflow past the width widens rather than truncates.
	assert.Equal(t, "CK2025083110000", SequenceNumber("CK", day, 10000, 4))
}

func TestNextOrderNumberIncrementsSequence(t *testing.T) {
	sqldb, db, mock := dbMock(t)
	defer sqldb.Close()

	today := time.Now().Format("20060102")
	mock.ExpectQuery("INSERT INTO daily_sequences .+").
		WithArgs("CK" + today).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(7))

	number, err := NextOrderNumber(db)
	require.NoError(t, err)
	assert.Equal(t, "CK"+today+"0007", number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextCardNumberUsesThreeDigits(t *testing.T) {
	sqldb, db, mock := dbMock(t)
	defer sqldb.Close()

	today := time.Now().Format("20060102")
	mock.ExpectQuery("INSERT INTO daily_sequences .+").
		WithArgs("LC" + today).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(12))

	number, err := NextCardNumber(db)
	require.NoError(t, err)
	assert.Equal(t, "LC"+today+"012", number)
	assert.NoError(t, mock.ExpectationsWereMet())
}
