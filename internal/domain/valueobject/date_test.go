package valueobject

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	march15 := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{input: "2024-03-15", want: march15, wantOK: true},
		{input: "2024-03-15T18:45:00Z", want: march15, wantOK: true},
		{input: "2024-03-15T23:30:00-03:00", want: march15, wantOK: true},
		{input: "2024-03-15 09:10:11", want: march15, wantOK: true},
		{input: "03/15/2024", want: march15, wantOK: true},
		{input: "3/15/2024", want: march15, wantOK: true},
		{input: "2024/03/15", want: march15, wantOK: true},
		{input: "Mar 15, 2024", want: march15, wantOK: true},
		{input: "March 15, 2024", want: march15, wantOK: true},
		{input: "15 Mar 2024", want: march15, wantOK: true},
		{input: "15-Mar-2024", want: march15, wantOK: true},
		{input: "Mar 15 2024", want: march15, wantOK: true},
		{input: "  2024-03-15  ", want: march15, wantOK: true},
		{input: "", wantOK: false},
		{input: "yesterday", wantOK: false},
		{input: "2024-02-30", wantOK: false},
		{input: "13/01/2024", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		input        string
		want         time.Time
		wantDateOnly bool
	}{
		{input: "2024-03-15", want: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), wantDateOnly: true},
		{input: "03/15/2024", want: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), wantDateOnly: true},
		{input: "2024-03-15T10:20:00Z", want: time.Date(2024, time.March, 15, 10, 20, 0, 0, time.UTC)},
		{input: "2024-03-15 10:20:00", want: time.Date(2024, time.March, 15, 10, 20, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, dateOnly, ok := ParseInstant(tt.input)
		if !ok {
			t.Fatalf("ParseInstant(%q) failed", tt.input)
		}
		if !got.Equal(tt.want) || dateOnly != tt.wantDateOnly {
			t.Errorf("ParseInstant(%q) = %v, %v; want %v, %v", tt.input, got, dateOnly, tt.want, tt.wantDateOnly)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(time.Date(2024, time.December, 31, 8, 0, 0, 0, time.UTC))
	want := time.Date(2024, time.December, 31, 23, 59, 59, 999999999, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
}

func TestMonth(t *testing.T) {
	m := MonthOf(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC))

	if m.Key() != "2024-02" {
		t.Errorf("Key = %s, want 2024-02", m.Key())
	}
	if m.Label() != "Feb 2024" {
		t.Errorf("Label = %s, want Feb 2024", m.Label())
	}
	if !m.Before(MonthOf(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))) {
		t.Error("expected February to be before March")
	}
	if MonthOf(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)).Before(MonthOf(time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC))) {
		t.Error("expected December not to be before November")
	}
}
