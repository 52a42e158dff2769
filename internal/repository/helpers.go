package repository

import (
	"database/sql"
	"time"
)

// encodeTimestamp converts a time to the integer epoch-second form the
// ticket table stores. Sub-second precision is dropped deliberately.
func encodeTimestamp(t time.Time) int64 {
	return t.UTC().Unix()
}

// decodeTimestamp converts stored epoch seconds back into a UTC time.
func decodeTimestamp(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

// decodeNullableTimestamp converts a nullable epoch-second column back
// into a *time.Time. Returns nil for NULL.
func decodeNullableTimestamp(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := decodeTimestamp(v.Int64)
	return &t
}

// nullableString converts a sql.NullString to a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// nullableStringValue converts a *string to a value suitable for SQLite
// storage. Returns nil (SQL NULL) if the pointer is nil.
func nullableStringValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
