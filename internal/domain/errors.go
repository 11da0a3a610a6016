package domain

import (
	"errors"
	"fmt"
)

// Tipos de error. Los errores concretos envuelven uno de ellos; la capa HTTP decide con errors.Is.
var (
	ErrValidation    = errors.New("entrada inválida")
	ErrAuthChallenge = errors.New("no se pudo completar el desafío de verificación")
	ErrStore         = errors.New("almacén de datos no disponible")
	ErrUpload        = errors.New("no se pudo subir la imagen")
	ErrAuthorization = errors.New("acceso denegado")
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCode        = errors.New("código de verificación inválido o expirado")
	ErrAuthRequired       = errors.New("se requiere una sesión verificada")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrDispatch           = errors.New("no se pudo enviar el pedido")
	ErrInvalidPhoneNumber = fmt.Errorf("%w: número de teléfono inválido", ErrValidation)
	ErrInvalidQuantity    = fmt.Errorf("%w: la cantidad debe estar entre 1 y 999", ErrValidation)
	ErrIncompleteProfile  = fmt.Errorf("%w: nombre, teléfono, dirección y ubicación son obligatorios", ErrValidation)
)
