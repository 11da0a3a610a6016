package entity

// AuthState estados del autenticador OTP.
type AuthState string

const (
	AuthStateUnauthenticated AuthState = "unauthenticated"
	AuthStateChallengeSent   AuthState = "challenge_sent"
	AuthStateVerified        AuthState = "verified"
)

// Identity identidad verificada por el proveedor. UID es opaco y estable por teléfono.
type Identity struct {
	UID         string
	PhoneNumber string // E.164, ej. +919876543210
}

// AuthSession valor que entra y sale de cada transición del autenticador.
// No se guarda en el servidor: el cliente lo devuelve en cada paso.
type AuthSession struct {
	State          AuthState
	PhoneNumber    string // E.164 al que se envió el código
	VerificationID string // handle opaco del desafío pendiente
	ChallengeToken string // token anti-bot emitido por el proveedor
	Identity       *Identity
}

// Current estado efectivo; un valor vacío es Unauthenticated.
func (s AuthSession) Current() AuthState {
	switch s.State {
	case AuthStateChallengeSent, AuthStateVerified:
		return s.State
	default:
		return AuthStateUnauthenticated
	}
}

// Verified true si la sesión terminó el desafío con éxito.
func (s AuthSession) Verified() bool {
	return s.Current() == AuthStateVerified && s.Identity != nil
}
