package utils

import (
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
)

const tokenAudience = "bmcms-maintenance"

// PasetoMaker verarbeitet lokale PASETO-Operationen der Version 4 (symmetrisch).
type PasetoMaker struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewPasetoMaker creates instance with existing key
func NewPasetoMaker(keyHex string) (*PasetoMaker, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("Invalid symmetric key: %w", err)
	}

	return &PasetoMaker{
		symmetricKey: key,
	}, nil
}

// GenerateSymmetricKey generiert einen neuen symmetrischen V4-Schlüssel. Wird verwendet, wenn kein hexKey vorhanden ist, nur einmal.
func GenerateSymmetricKey() string {
	key := paseto.NewV4SymmetricKey()
	return hex.EncodeToString(key.ExportBytes())
}

// CreateToken erstellt ein lokales V4 Token (encrypted) für einen Akteur mit Rolle.
func (m *PasetoMaker) CreateToken(actorID string, role entity.ActorRole, tokenID string, duration time.Duration) (string, error) {
	now := time.Now()
	token := paseto.NewToken()

	// Standard Claims festlegen
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetAudience(tokenAudience)
	token.SetIssuer("BMCMS-identity")
	token.SetSubject(actorID)
	token.SetJti(tokenID)

	// Benutzerdefiniert Claims festlegen
	token.SetString("role", string(role))

	return token.V4Encrypt(m.symmetricKey, nil), nil
}

type PayloadPaseto struct {
	ActorID   string
	Role      entity.ActorRole
	JTI       string
	ExpiresAt time.Time
}

// Actor returns the principal the token was issued to.
func (p *PayloadPaseto) Actor() entity.Actor {
	return entity.Actor{ID: p.ActorID, Role: p.Role}
}

// VerifyToken decrypts und überprüft das lokale V4 Token.
func (m *PasetoMaker) VerifyToken(tokenString string) (*PayloadPaseto, error) {
	parser := paseto.NewParser()

	// Validierungsregeln hinzufügen
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.ValidAt(time.Now()))

	// Parse und decrypt mit symmetrischem Schlüssel
	parsedToken, err := parser.ParseV4Local(m.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("Token decryption/verification failed: %w", err)
	}

	actorID, err := parsedToken.GetSubject()
	if err != nil || actorID == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	rawRole, err := parsedToken.GetString("role")
	if err != nil {
		return nil, fmt.Errorf("token has no role: %w", err)
	}
	role := entity.ActorRole(rawRole)
	if !role.IsValid() {
		return nil, fmt.Errorf("token has unknown role %q", rawRole)
	}

	jti, _ := parsedToken.GetJti()
	exp, _ := parsedToken.GetExpiration()

	return &PayloadPaseto{
		ActorID:   actorID,
		Role:      role,
		JTI:       jti,
		ExpiresAt: exp,
	}, nil
}
