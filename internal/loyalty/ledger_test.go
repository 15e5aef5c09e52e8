package loyalty

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/cakeshop/internal/models"
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

func TestRewardValidThroughExpiryDay(t *testing.T) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Expiry timestamp earlier today: the voucher holds until the day ends,
	// not until the clock time it was issued at.
	reward := models.LoyaltyReward{
		Status:     models.RewardStatusActive,
		ExpiryDate: midnight,
	}

	svc := NewService(nil)
	valid, err := svc.IsRewardValid(nil, &reward)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, models.RewardStatusActive, reward.Status)
}

func TestRewardExpiredYesterdayFlipsStatus(t *testing.T) {
	sqldb, db, mock := dbMock(t)
	defer sqldb.Close()

	reward := models.LoyaltyReward{
		Status:     models.RewardStatusActive,
		ExpiryDate: time.Now().AddDate(0, 0, -1),
	}
	reward.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "loyalty_rewards"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewService(db)
	valid, err := svc.IsRewardValid(db, &reward)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, models.RewardStatusExpired, reward.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRewardInactiveStatusIsInvalid(t *testing.T) {
	svc := NewService(nil)
	for _, status := range []string{models.RewardStatusUsed, models.RewardStatusExpired, models.RewardStatusPending} {
		reward := models.LoyaltyReward{
			Status:     status,
			ExpiryDate: time.Now().AddDate(0, 0, 30),
		}
		valid, err := svc.IsRewardValid(nil, &reward)
		require.NoError(t, err)
		assert.False(t, valid, "status=%s", status)
	}
}
