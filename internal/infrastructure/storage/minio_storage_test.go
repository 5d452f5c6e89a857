package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/camstock-api/pkg/config"
)

func TestPublicBase(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "endpoint sin TLS",
			cfg:  config.StorageConfig{Endpoint: "minio:9000", Bucket: "camstock"},
			want: "http://minio:9000/camstock",
		},
		{
			name: "endpoint con TLS",
			cfg:  config.StorageConfig{Endpoint: "s3.example.com", Bucket: "fotos", UseSSL: true},
			want: "https://s3.example.com/fotos",
		},
		{
			name: "URL pública tiene prioridad",
			cfg:  config.StorageConfig{Endpoint: "minio:9000", Bucket: "camstock", PublicURL: "https://cdn.example.com/camstock/"},
			want: "https://cdn.example.com/camstock",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBase(tt.cfg))
		})
	}
}

func TestObjectURL_EscapaSegmentos(t *testing.T) {
	assert.Equal(t, "http://h/b/images/a%20b.png", objectURL("http://h/b", "images/a b.png"))
}
