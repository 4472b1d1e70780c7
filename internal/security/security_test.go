package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash should not equal the plaintext password")
	}

	if !CheckPassword("correct horse battery", hash) {
		t.Error("CheckPassword should accept the original password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword should reject a wrong password")
	}
	if CheckPassword("correct horse battery", "not-a-hash") {
		t.Error("CheckPassword should reject a malformed hash")
	}
}

func TestTokenIssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42, "maria@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "maria@example.com" {
		t.Errorf("Email = %q, want maria@example.com", claims.Email)
	}
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	for _, token := range []string{"", "not.a.token", "aaa.bbb.ccc"} {
		if _, err := issuer.Validate(token); err != ErrInvalidToken {
			t.Errorf("Validate(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestTokenValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one", time.Hour)
	other := NewTokenIssuer("secret-two", time.Hour)

	token, err := issuer.Issue(1, "user@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenValidateRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(1, "user@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := issuer.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate of expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}

	// A different client has its own window
	if !rl.Allow("5.6.7.8") {
		t.Error("other clients should not share the window")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("client") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("client") {
		t.Fatal("second request inside the window should be denied")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("client") {
		t.Error("request after the window should be allowed again")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{
			name:      "forwarded chain uses first hop",
			forwarded: "203.0.113.9, 10.0.0.1",
			remote:    "10.0.0.2:1234",
			want:      "203.0.113.9",
		},
		{
			name:   "real ip fallback",
			realIP: "198.51.100.4",
			remote: "10.0.0.2:1234",
			want:   "198.51.100.4",
		},
		{
			name:   "remote addr fallback",
			remote: "192.0.2.1:5678",
			want:   "192.0.2.1:5678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
