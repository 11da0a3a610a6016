package dto

// AuthSessionDTO estado del autenticador que el cliente conserva y reenvía en cada paso.
type AuthSessionDTO struct {
	State          string `json:"state"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	VerificationID string `json:"verification_id,omitempty"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

// RequestCodeRequest número nacional de 10 dígitos (sin prefijo de país).
type RequestCodeRequest struct {
	Session     AuthSessionDTO `json:"session"`
	PhoneNumber string         `json:"phone_number" validate:"required,len=10,numeric"`
}

// VerifyCodeRequest código de 6 dígitos contra el desafío pendiente.
type VerifyCodeRequest struct {
	Session AuthSessionDTO `json:"session"`
	Code    string         `json:"code" validate:"required,len=6,numeric"`
}

// ResetChallengeRequest "cambiar número": descarta el desafío pendiente.
type ResetChallengeRequest struct {
	Session AuthSessionDTO `json:"session"`
}

// IdentityResponse identidad verificada.
type IdentityResponse struct {
	UID         string `json:"uid"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

// VerifyCodeResponse sesión verificada: token Bearer y ruta a la que volver.
type VerifyCodeResponse struct {
	Session   AuthSessionDTO   `json:"session"`
	Token     string           `json:"token"`
	Identity  IdentityResponse `json:"identity"`
	ReturnURL string           `json:"return_url"`
}

// AuthErrorResponse error de un paso del autenticador con la sesión con la que el cliente debe seguir
// (por ejemplo, un token anti-bot renovado tras un fallo del proveedor).
type AuthErrorResponse struct {
	ErrorResponse
	Session AuthSessionDTO `json:"session"`
}
