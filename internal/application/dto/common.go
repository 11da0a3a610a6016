package dto

// ErrorResponse cuerpo de error HTTP.
// Redirect indica la ruta del cliente a la que debe ir (ej. /auth, /cart); Retry que puede reintentar.
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
	Retry    bool   `json:"retry,omitempty"`
}
