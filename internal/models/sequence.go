package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DailySequence backs order and card number generation. Prefix embeds the
// day (e.g. "CK20250831") so counters reset naturally each day; the upsert
// increment is atomic under concurrent writers.
type DailySequence struct {
	Prefix string `gorm:"primaryKey" json:"prefix"`
	Value  int    `json:"value"`
}

// SequenceNumber formats an identifier like CK202508310001.
func SequenceNumber(kind string, day time.Time, value, width int) string {
	return fmt.Sprintf("%s%s%0*d", kind, day.Format("20060102"), width, value)
}

func nextNumber(db *gorm.DB, kind string, width int) (string, error) {
	now := time.Now()
	prefix := kind + now.Format("20060102")

	var value int
	err := db.Raw(`INSERT INTO daily_sequences (prefix, value) VALUES (?, 1)
		ON CONFLICT (prefix) DO UPDATE SET value = daily_sequences.value + 1
		RETURNING value`, prefix).Scan(&value).Error
	if err != nil {
		return "", err
	}
	return SequenceNumber(kind, now, value, width), nil
}

// NextOrderNumber returns the next CK{YYYYMMDD}{NNNN} identifier.
func NextOrderNumber(db *gorm.DB) (string, error) {
	return nextNumber(db, "CK", 4)
}

// NextCustomOrderNumber returns the next CSTM{YYYYMMDD}{NNNN} identifier.
func NextCustomOrderNumber(db *gorm.DB) (string, error) {
	return nextNumber(db, "CSTM", 4)
}

// NextGiftBoxOrderNumber returns the next GB{YYYYMMDD}{NNNN} identifier.
func NextGiftBoxOrderNumber(db *gorm.DB) (string, error) {
	return nextNumber(db, "GB", 4)
}

// NextCardNumber returns the next LC{YYYYMMDD}{NNN} identifier.
func NextCardNumber(db *gorm.DB) (string, error) {
	return nextNumber(db, "LC", 3)
}
