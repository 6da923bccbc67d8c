package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-04")
	if !ok {
		t.Fatal("IsValidDate(2026-03-04) = false, want true")
	}
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Errorf("IsValidDate(2026-03-04) = %v, want %v", date, want)
	}

	invalid := []string{"", "2026-3-4", "04-03-2026", "2026-13-01", "2026-02-30", "tomorrow"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		input  string
		wantID int64
		wantOK bool
	}{
		{"1", 1, true},
		{"1042", 1042, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, c := range cases {
		id, ok := ParseID(c.input)
		if ok != c.wantOK {
			t.Errorf("ParseID(%q) ok = %v, want %v", c.input, ok, c.wantOK)
			continue
		}
		if ok && id != c.wantID {
			t.Errorf("ParseID(%q) = %d, want %d", c.input, id, c.wantID)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "staff_id", Message: "Staff ID is required"},
		{Field: "password", Message: "Password is required"},
	}

	want := "staff_id: Staff ID is required; password: Password is required"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["staff_id"] != "Staff ID is required" || m["password"] != "Password is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
