package ports

import "context"

// KeyValueStore almacenamiento persistente del lado del cliente (carrito, ruta de retorno).
type KeyValueStore interface {
	// Read devuelve ok=false si la clave no existe.
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
