package uploader

import (
	"testing"

	"github.com/emmanuelcandido/coursecast/internal/config"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.StorageConfig
		remoteID string
		want     string
	}{
		{
			name:     "default GCS endpoint",
			cfg:      config.StorageConfig{Bucket: "coursecast-media"},
			remoteID: "podcasts/algebra-101.mp3",
			want:     "https://storage.googleapis.com/coursecast-media/podcasts/algebra-101.mp3",
		},
		{
			name:     "configured base URL",
			cfg:      config.StorageConfig{Bucket: "coursecast-media", PublicBaseURL: "https://cdn.example.com"},
			remoteID: "podcasts/algebra-101.mp3",
			want:     "https://cdn.example.com/podcasts/algebra-101.mp3",
		},
		{
			name:     "base URL with trailing slash",
			cfg:      config.StorageConfig{Bucket: "coursecast-media", PublicBaseURL: "https://cdn.example.com/"},
			remoteID: "/podcasts/algebra-101.mp3",
			want:     "https://cdn.example.com/podcasts/algebra-101.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &implUploader{cfg: tt.cfg}
			if got := u.PublicURL(tt.remoteID); got != tt.want {
				t.Errorf("PublicURL(%q) = %s, want %s", tt.remoteID, got, tt.want)
			}
		})
	}
}
