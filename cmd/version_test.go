package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsUpdate(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{name: "newer release", current: "v1.2.0", latest: "1.3.0", want: true},
		{name: "same release", current: "1.3.0", latest: "v1.3.0", want: false},
		{name: "older release", current: "2.0.0", latest: "1.9.9", want: false},
		{name: "patch release", current: "v1.2", latest: "1.2.1", want: true},
		{name: "development build", current: "dev", latest: "1.0.0", wantErr: true},
		{name: "bad current", current: "nightly", latest: "1.0.0", wantErr: true},
		{name: "bad latest", current: "1.0.0", latest: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := needsUpdate(tt.current, tt.latest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
