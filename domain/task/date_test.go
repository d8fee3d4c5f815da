package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-01-15",
			want:  "2024-01-15",
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  "2024-02-29",
		},
		{
			name:    "non-leap year february 29",
			input:   "2023-02-29",
			wantErr: true,
		},
		{
			name:    "wrong layout",
			input:   "15/01/2024",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if d.String() != tt.want {
				t.Errorf("ParseDate(%q).String() = %v, want %v", tt.input, d.String(), tt.want)
			}
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	due := NewDate(2024, time.January, 5)

	if got := start.DaysUntil(due); got != 4 {
		t.Errorf("DaysUntil() = %v, want 4", got)
	}
	if got := due.DaysUntil(start); got != -4 {
		t.Errorf("DaysUntil() reversed = %v, want -4", got)
	}
	if !start.Before(due) {
		t.Error("Before() = false, want true")
	}
	if !due.After(start) {
		t.Error("After() = false, want true")
	}
	if !start.AddDays(4).Equal(due) {
		t.Errorf("AddDays(4) = %v, want %v", start.AddDays(4), due)
	}

	// Month boundary
	if got := NewDate(2024, time.January, 31).AddDays(1); got.String() != "2024-02-01" {
		t.Errorf("AddDays(1) across month = %v, want 2024-02-01", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 7)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-03-07"` {
		t.Errorf("Marshal() = %s, want %q", data, "2024-03-07")
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	// null leaves the zero value
	var zero Date
	if err := json.Unmarshal([]byte("null"), &zero); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if !zero.IsZero() {
		t.Errorf("Unmarshal(null) = %v, want zero", zero)
	}
}

func TestDate_SQLRoundTrip(t *testing.T) {
	d := NewDate(2024, time.December, 31)

	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "2024-12-31" {
		t.Errorf("Value() = %v, want 2024-12-31", v)
	}

	tests := []struct {
		name string
		src  any
		want string
	}{
		{
			name: "string",
			src:  "2024-12-31",
			want: "2024-12-31",
		},
		{
			name: "bytes",
			src:  []byte("2024-12-31"),
			want: "2024-12-31",
		},
		{
			name: "time.Time",
			src:  time.Date(2024, time.December, 31, 10, 30, 0, 0, time.UTC),
			want: "2024-12-31",
		},
		{
			name: "timestamp string",
			src:  "2024-12-31T00:00:00Z",
			want: "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			if err := got.Scan(tt.src); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.src, err)
			}
			if got.String() != tt.want {
				t.Errorf("Scan(%v) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}
