package store

import (
	"fmt"
	"time"
)

// sqliteTimestampLayouts are the text forms SQLite hands back when a column
// has no declared DATETIME type, for example in a RETURNING clause.
var sqliteTimestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// timestamp scans a time column from either driver.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	}

	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range sqliteTimestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("unrecognised timestamp %q", s)
}
