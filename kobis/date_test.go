package kobis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"20240101", false},
		{"20240229", false},
		{"20230229", true},
		{"20241301", true},
		{"2024-01-01", true},
		{"2024010", true},
		{"202401011", true},
		{"2024O101", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, DateString(got))
		})
	}
}

func TestYesterday(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "20240229", Yesterday(now))

	now = time.Date(2025, time.January, 1, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "20241231", Yesterday(now))
}

func FuzzParseDate(f *testing.F) {
	f.Add("20240101")
	f.Add("19991231")
	f.Add("2024-1-1")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		parsed, err := ParseDate(s)
		if err != nil {
			return
		}
		if len(s) != 8 {
			t.Fatalf("accepted %q with length %d", s, len(s))
		}
		if DateString(parsed) != s {
			t.Fatalf("round trip mismatch: %q -> %q", s, DateString(parsed))
		}
	})
}
