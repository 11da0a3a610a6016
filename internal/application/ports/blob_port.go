package ports

import (
	"context"
	"io"
)

// BlobStore almacén de imágenes de producto. Upload devuelve la dirección pública del objeto.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
