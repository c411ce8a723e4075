package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinetix-cli/booking"
	"cinetix-cli/config"
	"cinetix-cli/model"
)

const (
	sessionFile    = "session.json"
	ticketsFile    = "tickets.json"
	onboardingFile = "onboarding.json"
	maxTickets     = 20
)

var ErrNoSession = errors.New("not logged in")

type envelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// Session is what a successful login leaves on disk. The JSON keys match the
// ones the mobile client stores.
type Session struct {
	Token string     `json:"authToken"`
	User  model.User `json:"userData"`
}

func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.User.Id) != ""
}

// Expired reports whether the token is a JWT whose exp claim is in the past.
// The signature is not checked; the server remains the authority.
func (s Session) Expired(now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// SaveSession persists token and user together.
func SaveSession(session Session) error {
	if !session.Valid() {
		return errors.New("session requires token and user")
	}
	path, err := configPath(sessionFile)
	if err != nil {
		return err
	}
	return writeJSON(path, session, 0o600)
}

// LoadSession returns the stored session. Missing, incomplete or expired
// sessions yield ErrNoSession.
func LoadSession() (Session, error) {
	path, err := configPath(sessionFile)
	if err != nil {
		return Session{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, errors.New("invalid session format")
	}
	if !session.Valid() || session.Expired(time.Now()) {
		return Session{}, ErrNoSession
	}
	return session, nil
}

// ClearSession removes both the token and the user data.
func ClearSession() error {
	path, err := configPath(sessionFile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LoadTickets returns remembered receipts, newest first.
func LoadTickets() ([]booking.Receipt, error) {
	path, err := configPath(ticketsFile)
	if err != nil {
		return nil, err
	}
	doc, err := readEnvelope[[]booking.Receipt](path)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket history format: %w", err)
	}
	return doc.Data, nil
}

// RememberTicket puts a receipt at the front of the history, replacing any
// older entry with the same booking code.
func RememberTicket(receipt booking.Receipt) error {
	if strings.TrimSpace(receipt.BookingCode) == "" {
		return errors.New("receipt has no booking code")
	}
	history, err := LoadTickets()
	if err != nil {
		return err
	}
	next := []booking.Receipt{receipt}

	for _, existing := range history {
		if strings.EqualFold(existing.BookingCode, receipt.BookingCode) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxTickets {
			break
		}
	}

	path, err := configPath(ticketsFile)
	if err != nil {
		return err
	}
	return writeJSON(path, envelope[[]booking.Receipt]{UpdatedAt: time.Now(), Data: next}, 0o644)
}

// FindTicket looks a receipt up by booking code.
func FindTicket(code string) (booking.Receipt, bool, error) {
	tickets, err := LoadTickets()
	if err != nil {
		return booking.Receipt{}, false, err
	}
	code = strings.TrimSpace(code)
	for _, t := range tickets {
		if strings.EqualFold(t.BookingCode, code) {
			return t, true, nil
		}
	}
	return booking.Receipt{}, false, nil
}

func OnboardingSeen() (bool, error) {
	path, err := configPath(onboardingFile)
	if err != nil {
		return false, err
	}
	doc, err := readEnvelope[bool](path)
	if err != nil {
		return false, err
	}
	return doc.Data, nil
}

func MarkOnboardingSeen() error {
	path, err := configPath(onboardingFile)
	if err != nil {
		return err
	}
	return writeJSON(path, envelope[bool]{UpdatedAt: time.Now(), Data: true}, 0o644)
}

func readEnvelope[T any](path string) (envelope[T], error) {
	var doc envelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func writeJSON(path string, v any, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, perm)
}

func configPath(name string) (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
