package gcsuploader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"simple", "gs://my-bucket/file.csv", "my-bucket", "file.csv", false},
		{"nested path", "gs://my-bucket/runs/abc/file.csv", "my-bucket", "runs/abc/file.csv", false},
		{"missing scheme", "my-bucket/file.csv", "", "", true},
		{"http scheme", "https://my-bucket/file.csv", "", "", true},
		{"no object", "gs://my-bucket", "", "", true},
		{"empty object", "gs://my-bucket/", "", "", true},
		{"empty bucket", "gs:///file.csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := parseGCSURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantObject, object)
		})
	}
}

func TestExtractFilenameFromGCSURI(t *testing.T) {
	assert.Equal(t, "profile.yaml", ExtractFilenameFromGCSURI("gs://bucket/profiles/profile.yaml"))
	assert.Equal(t, "run.csv", ExtractFilenameFromGCSURI("gs://bucket/run.csv"))
}
