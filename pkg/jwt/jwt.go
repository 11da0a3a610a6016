package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims de la sesión verificada por OTP: identidad opaca + teléfono E.164.
// El teléfono va en el token para que el Admin Gate decida sin consultar el proveedor.
type Claims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid"`
	Phone string `json:"phone"`
}

// challengeAudience separa los tokens de desafío de los de sesión firmados con el mismo secreto.
const challengeAudience = "otp-challenge"

// Generate genera un token de sesión firmado con uid y teléfono.
func Generate(secret, uid, phone, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UID:   uid,
		Phone: phone,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token de sesión y devuelve uid y teléfono.
// Retorna error si el token es inválido, expirado, de desafío o tiene firma incorrecta.
func Parse(secret, tokenString string) (uid, phone string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	for _, aud := range claims.Audience {
		if aud == challengeAudience {
			return "", "", fmt.Errorf("jwt: token de desafío no válido como sesión")
		}
	}
	if claims.UID == "" || claims.Phone == "" {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.UID, claims.Phone, nil
}

// GenerateChallenge emite un token anti-bot de un solo uso. Devuelve el token y su jti.
func GenerateChallenge(secret, issuer string, ttl time.Duration) (token, jti string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	jti = uuid.NewString()
	claims := jwt.RegisteredClaims{
		ID:        jti,
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{challengeAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// ParseChallenge valida un token de desafío y devuelve su jti y expiración.
func ParseChallenge(secret, tokenString string) (jti string, expiresAt time.Time, err error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc(secret), jwt.WithAudience(challengeAudience))
	if err != nil {
		return "", time.Time{}, err
	}
	if !token.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, fmt.Errorf("claims inválidos")
	}
	return claims.ID, claims.ExpiresAt.Time, nil
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc(secret))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}
}
