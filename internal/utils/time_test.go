package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDayString(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	tests := []struct {
		name    string
		instant time.Time
		loc     *time.Location
		want    string
	}{
		{
			name:    "UTC midday stays on the same day",
			instant: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			want:    "2025-06-15",
		},
		{
			name:    "UTC just after midnight is the previous day in New York",
			instant: time.Date(2025, 6, 15, 1, 30, 0, 0, time.UTC),
			loc:     ny,
			want:    "2025-06-14",
		},
		{
			name:    "late New York evening is the next day in UTC",
			instant: time.Date(2025, 6, 14, 23, 0, 0, 0, ny),
			loc:     time.UTC,
			want:    "2025-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayString(tt.instant, tt.loc); got != tt.want {
				t.Errorf("DayString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.UTC
	in := time.Date(2025, 3, 9, 17, 45, 12, 999, loc)
	got := StartOfDay(in, loc)
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc := time.UTC

	got, err := ParseDateInLocation("2025-01-31", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	want := time.Date(2025, 1, 31, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDateInLocation() = %v, want %v", got, want)
	}

	if _, err := ParseDateInLocation("31/01/2025", loc); err == nil {
		t.Error("ParseDateInLocation() accepted an invalid format")
	}
}

func TestValidateDateFormat(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "valid date", date: "2025-06-15", want: true},
		{name: "slash separated", date: "2025/06/15", want: false},
		{name: "missing day", date: "2025-06", want: false},
		{name: "empty", date: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateDateFormat(tt.date); got != tt.want {
				t.Errorf("ValidateDateFormat(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{name: "empty", timezone: "", want: true},
		{name: "Local", timezone: "Local", want: true},
		{name: "UTC", timezone: "UTC", want: true},
		{name: "valid IANA name", timezone: "Europe/London", want: true},
		{name: "garbage", timezone: "Not/AZone", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
