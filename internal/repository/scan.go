package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayouts are the textual timestamp forms SQLite may hand back.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// timeScanner reads a timestamp column into *t regardless of whether the
// driver returns it as time.Time or as text.
type timeScanner struct {
	t *time.Time
}

func (s timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.t = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		*s.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (s timeScanner) parse(v string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			*s.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", v)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// nullableString stores an empty description as NULL.
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// nullableID stores a missing or zero user reference as NULL.
func nullableID(id *int64) any {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}

// now is the timestamp assigned on insert and update, in UTC.
//
// It is taken before the statement waits for the shared connection, so
// concurrent inserts may commit in a different order than their
// created_at values. Lists order by created_at, with id only breaking ties.
func now() time.Time {
	return time.Now().UTC()
}
