package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinetix-cli/booking"
	"cinetix-cli/model"
)

func setTestConfigDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	return root
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSession_RoundTripAndClear(t *testing.T) {
	setTestConfigDir(t)

	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	session := Session{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  model.User{Id: "u1", Name: "Budi", Email: "budi@example.com"},
	}
	if err := SaveSession(session); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got, err := LoadSession()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Token != session.Token || got.User != session.User {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := ClearSession(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
	if err := ClearSession(); err != nil {
		t.Fatalf("clearing twice should be fine, got %v", err)
	}
}

func TestSession_FileUsesStorageKeys(t *testing.T) {
	setTestConfigDir(t)

	if err := SaveSession(Session{Token: "opaque", User: model.User{Id: "u1"}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	path, err := configPath(sessionFile)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	for _, key := range []string{`"authToken"`, `"userData"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in %s", key, data)
		}
	}
}

func TestSaveSession_RejectsIncomplete(t *testing.T) {
	setTestConfigDir(t)

	if err := SaveSession(Session{Token: "tok"}); err == nil {
		t.Fatal("expected error for missing user")
	}
	if err := SaveSession(Session{User: model.User{Id: "u1"}}); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoadSession_ExpiredTokenIsAbsent(t *testing.T) {
	setTestConfigDir(t)

	session := Session{Token: signedToken(t, time.Now().Add(-time.Minute)), User: model.User{Id: "u1"}}
	if err := SaveSession(session); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired token, got %v", err)
	}
}

func TestSession_OpaqueTokenNeverExpires(t *testing.T) {
	s := Session{Token: "not-a-jwt", User: model.User{Id: "u1"}}
	if s.Expired(time.Now().Add(100 * 24 * time.Hour)) {
		t.Fatal("expected opaque token to be treated as unexpired")
	}
}

func TestRememberTicket_NewestFirstAndDeduplicated(t *testing.T) {
	setTestConfigDir(t)

	for i := 1; i <= 3; i++ {
		r := booking.Receipt{BookingCode: fmt.Sprintf("ORD00000%d", i), MovieTitle: "Movie"}
		if err := RememberTicket(r); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if err := RememberTicket(booking.Receipt{BookingCode: "ORD000001", MovieTitle: "Again"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	tickets, err := LoadTickets()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}
	if tickets[0].BookingCode != "ORD000001" || tickets[0].MovieTitle != "Again" {
		t.Fatalf("expected re-remembered ticket first, got %+v", tickets[0])
	}

	got, ok, err := FindTicket("ord000002")
	if err != nil || !ok || got.BookingCode != "ORD000002" {
		t.Fatalf("unexpected lookup: %+v %v %v", got, ok, err)
	}
	if _, ok, _ := FindTicket("ORD999999"); ok {
		t.Fatal("expected unknown code to be missing")
	}
}

func TestRememberTicket_CapsHistory(t *testing.T) {
	setTestConfigDir(t)

	for i := 0; i < maxTickets+5; i++ {
		if err := RememberTicket(booking.Receipt{BookingCode: fmt.Sprintf("ORD%06d", i)}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	tickets, err := LoadTickets()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(tickets) != maxTickets {
		t.Fatalf("expected %d tickets, got %d", maxTickets, len(tickets))
	}
}

func TestRememberTicket_RequiresCode(t *testing.T) {
	setTestConfigDir(t)
	if err := RememberTicket(booking.Receipt{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRememberTicket_KeepsUnreadableHistory(t *testing.T) {
	setTestConfigDir(t)
	path, err := configPath(ticketsFile)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	garbage := []byte("{not json")
	if err := os.WriteFile(path, garbage, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := RememberTicket(booking.Receipt{BookingCode: "ORD000001"}); err == nil {
		t.Fatal("expected error for unreadable history")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != string(garbage) {
		t.Fatalf("expected history left untouched, got %q", data)
	}
}

func TestOnboarding(t *testing.T) {
	root := setTestConfigDir(t)

	seen, err := OnboardingSeen()
	if err != nil || seen {
		t.Fatalf("expected unseen onboarding, got %v %v", seen, err)
	}
	if err := MarkOnboardingSeen(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	seen, err = OnboardingSeen()
	if err != nil || !seen {
		t.Fatalf("expected seen onboarding, got %v %v", seen, err)
	}
	if _, err := os.Stat(filepath.Join(root, "cinetix-cli", onboardingFile)); err != nil {
		t.Fatalf("expected onboarding file under config dir: %v", err)
	}
}
