package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateMarshalJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 6, 13, 15, 4, 5, 0, time.UTC))
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if string(out) != `"2025-06-13"` {
		t.Fatalf("got %s want \"2025-06-13\"", out)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-06-13"`), &d); err != nil {
		t.Fatalf("err=%v", err)
	}
	if d.String() != "2025-06-13" {
		t.Fatalf("got %s", d.String())
	}
	if err := json.Unmarshal([]byte(`"13/06/2025"`), &d); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if d.Time().Month() != time.January || d.Time().Day() != 2 {
		t.Fatalf("got %v", d.Time())
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, 6, 13, 23, 0, 0, 0, time.FixedZone("X", 3600))); err != nil {
		t.Fatalf("err=%v", err)
	}
	if d.String() != "2025-06-13" {
		t.Fatalf("got %s", d.String())
	}
	if err := d.Scan([]byte("2025-06-20")); err != nil {
		t.Fatalf("err=%v", err)
	}
	if d.String() != "2025-06-20" {
		t.Fatalf("got %s", d.String())
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error for int")
	}
}
