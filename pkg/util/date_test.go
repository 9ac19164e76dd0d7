package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-11")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2024-1-11", "11/01/2024", "2024-01-11T12:00:00Z", "not-a-date"} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if got := ParseDateDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default, got %v", got)
	}
	if got := ParseDateDefault("2024-02-29", def); got.Equal(def) {
		t.Fatalf("valid leap date fell back to default")
	}
}

func TestDayKey(t *testing.T) {
	at := time.Date(2024, 3, 20, 23, 30, 0, 0, time.FixedZone("plus2", 2*3600))
	if got := DayKey(at); got != "2024-03-20" {
		t.Fatalf("got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	days := DaysBetween(from, to)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	if !days[0].Equal(from) || !days[2].Equal(to) {
		t.Fatalf("unexpected bounds %v %v", days[0], days[2])
	}

	if got := DaysBetween(to, from); got != nil {
		t.Fatalf("reversed range should be nil, got %v", got)
	}
}
