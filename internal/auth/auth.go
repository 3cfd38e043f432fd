// Package auth guards the mutating admin routes with a signed session cookie.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CookieName is the session cookie set on login.
const CookieName = "marsloop_session"

// Service validates credentials and issues session cookies.
type Service struct {
	db            *sql.DB
	sessionSecret []byte
}

// New returns a Service backed by the users table.
func New(db *sql.DB, sessionSecret string) *Service {
	return &Service{db: db, sessionSecret: []byte(sessionSecret)}
}

// HashPassword is the stored form of a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// ValidateCredentials reports whether email and password match a user.
func (s *Service) ValidateCredentials(ctx context.Context, email, password string) (bool, error) {
	var passwordHash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE email = ?`, email).Scan(&passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user credentials: %w", err)
	}

	provided := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(passwordHash), []byte(provided)) == 1, nil
}

// EnsureAdmin creates the admin user if it does not exist. It reports
// whether a row was inserted. Empty credentials are a no-op.
func EnsureAdmin(ctx context.Context, tx *sql.Tx, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, HashPassword(password)); err != nil {
		return false, fmt.Errorf("insert admin user: %w", err)
	}
	return true, nil
}

func (s *Service) sign(payload string) []byte {
	mac := hmac.New(sha256.New, s.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// SessionValue returns the signed cookie value for email.
func (s *Service) SessionValue(email string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(email))
	return payload + "." + hex.EncodeToString(s.sign(payload))
}

// VerifySessionValue returns the email of a valid session value.
func (s *Service) VerifySessionValue(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok || strings.Contains(signature, ".") {
		return "", false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, s.sign(payload)) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}
	return string(decoded), true
}

// SetSessionCookie logs the user in.
func (s *Service) SetSessionCookie(w http.ResponseWriter, email string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.SessionValue(email),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie logs the user out.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Authenticated reports whether r carries a valid session.
func (s *Service) Authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	_, ok := s.VerifySessionValue(cookie.Value)
	return ok
}

// Require rejects requests without a valid session.
func (s *Service) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Authenticated(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
