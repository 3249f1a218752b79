package usermodel

import (
	"strings"
	"testing"
)

func TestResolveUserID(t *testing.T) {
	tests := []struct {
		email, want string
	}{
		{"  Alice@Example.COM ", "alice@example.com"},
		{"bob@school.edu", "bob@school.edu"},
		{"", AnonymousUser},
		{"   ", AnonymousUser},
	}
	for _, tt := range tests {
		if got := ResolveUserID(tt.email); got != tt.want {
			t.Errorf("ResolveUserID(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestHashUserID(t *testing.T) {
	a := HashUserID("alice@example.com")
	if !strings.HasPrefix(a, "u_") || len(a) != 18 {
		t.Errorf("HashUserID() = %q, want u_ + 16 hex", a)
	}
	if a != HashUserID("alice@example.com") {
		t.Error("HashUserID() is not deterministic")
	}
	if a == HashUserID("bob@example.com") {
		t.Error("HashUserID() collides for different users")
	}
	if HashUserID("") != HashUserID(AnonymousUser) {
		t.Error("empty id should hash as the anonymous user")
	}
	if strings.Contains(a, "alice") {
		t.Errorf("HashUserID() leaks the identity: %q", a)
	}
}
