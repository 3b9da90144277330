package repository

import (
	"fmt"
	"time"

	"github.com/iliyamo/habit-tracker/internal/model"
)

// timeLayouts are the textual timestamp forms the supported drivers may
// hand back when they do not decode a column into time.Time themselves.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	model.DateLayout,
}

// dbTime scans DATETIME/TIMESTAMP columns regardless of whether the
// driver returns time.Time, a string or raw bytes.
type dbTime struct{ time.Time }

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("scan time: unsupported type %T", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if p, err := time.Parse(layout, s); err == nil {
			t.Time = p.UTC()
			return nil
		}
	}
	return fmt.Errorf("scan time: unrecognized format %q", s)
}

// dbDate scans DATE columns into their YYYY-MM-DD form.
type dbDate struct{ Value string }

func (d *dbDate) Scan(src any) error {
	var t dbTime
	if err := t.Scan(src); err != nil {
		return err
	}
	// DATE values carry no zone; keep the wall-clock calendar day.
	d.Value = t.Time.Format(model.DateLayout)
	return nil
}
