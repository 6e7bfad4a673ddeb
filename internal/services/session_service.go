package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lumenstudio/cms-auth-service/internal/config"
)

// TokenIssuer identifies this service in the tokens it signs.
const TokenIssuer = "lumenstudio-cms"

// SubjectSeparator joins the email and user-agent halves of a session
// subject: "<email>::<user-agent>".
const SubjectSeparator = "::"

// SessionSubject builds the subject a session token is bound to.
func SessionSubject(email, userAgent string) string {
	return email + SubjectSeparator + userAgent
}

// SessionService mints and verifies the signed, self-contained session
// tokens carried by the cms_session cookie. There is no server-side
// session table; possession of an unexpired, correctly signed token IS
// the authenticated state.
type SessionService interface {
	Mint(subject string, ttl time.Duration) (string, error)

	// Verify returns the embedded subject, or "" on any failure
	// (malformed, expired, bad signature). It never panics and never
	// surfaces parse errors to the caller.
	Verify(tokenString string) string
}

type sessionService struct {
	secret []byte
}

func NewSessionService(cfg *config.Config) SessionService {
	return &sessionService{secret: cfg.AuthSecret}
}

func (s *sessionService) Mint(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty session subject")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": TokenIssuer,
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *sessionService) Verify(tokenString string) string {
	if tokenString == "" {
		return ""
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
