package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/scrypt"
)

const (
	SessionCookie = "dealscope_session"
	sessionMaxAge = 14 * 24 * time.Hour
)

var ErrInvalidSession = errors.New("invalid session token")

// Manager signs and verifies session tokens and hashes passwords. Tokens are
// base64(payload).hexhmac, HMAC-SHA256 over the payload with the configured
// secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

type sessionPayload struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

func (m *Manager) sign(body string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) Encode(userID, email string) string {
	payload := sessionPayload{
		UID:   userID,
		Email: email,
		Exp:   time.Now().Add(sessionMaxAge).UnixMilli(),
	}
	data, _ := json.Marshal(payload)
	body := base64.RawURLEncoding.EncodeToString(data)
	return body + "." + m.sign(body)
}

// Decode verifies the signature and expiry and returns the user ID and email.
func (m *Manager) Decode(token string) (string, string, error) {
	body, sig, found := strings.Cut(token, ".")
	if !found || body == "" || sig == "" {
		return "", "", ErrInvalidSession
	}
	expected := m.sign(body)
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return "", "", ErrInvalidSession
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", "", ErrInvalidSession
	}
	var payload sessionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", "", ErrInvalidSession
	}
	if payload.Exp < time.Now().UnixMilli() {
		return "", "", ErrInvalidSession
	}
	return payload.UID, payload.Email, nil
}

func (m *Manager) SetCookie(w http.ResponseWriter, userID, email string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    m.Encode(userID, email),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionMaxAge.Seconds()),
		Path:     "/",
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}

// UserID extracts the authenticated user from the request cookie, or "" when
// the session is absent or invalid.
func (m *Manager) UserID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	uid, _, err := m.Decode(cookie.Value)
	if err != nil {
		return ""
	}
	return uid
}

// HashPassword derives a scrypt hash, encoded as salt:hash hex.
func HashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	derived, err := scrypt.Key([]byte(password), salt, 1<<15, 8, 1, 64)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", hex.EncodeToString(salt), hex.EncodeToString(derived)), nil
}

func VerifyPassword(password, stored string) bool {
	saltHex, hashHex, found := strings.Cut(stored, ":")
	if !found {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	derived, err := scrypt.Key([]byte(password), salt, 1<<15, 8, 1, 64)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(derived, want) == 1
}
