package chronicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const basePath = "v1alpha/projects/p1/locations/us/instances/i1"

func TestNormalizeExportID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare short id",
			raw:  "f0015a77-dead-beef",
			want: basePath + "/dataExports/f0015a77-dead-beef",
		},
		{
			name: "full path without version",
			raw:  "projects/p1/locations/us/instances/i1/dataExports/abc",
			want: "v1alpha/projects/p1/locations/us/instances/i1/dataExports/abc",
		},
		{
			name: "already versioned",
			raw:  "v1alpha/projects/p1/locations/us/instances/i1/dataExports/abc",
			want: "v1alpha/projects/p1/locations/us/instances/i1/dataExports/abc",
		},
		{
			// Contains "projects/" but doesn't start with it: trusted
			// as-is rather than rejected.
			name: "embedded projects substring passes through",
			raw:  "weird?ref=projects/p1",
			want: "weird?ref=projects/p1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExportID(tt.raw, basePath)
			assert.Equal(t, tt.want, got)
			// Normalization is idempotent.
			assert.Equal(t, got, NormalizeExportID(got, basePath))
		})
	}
}
