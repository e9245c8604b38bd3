package utils

import "testing"

func TestDisplayNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"ayse@example.com", "ayse"},
		{"mehmet.kaya@mail.example.org", "mehmet.kaya"},
		{"noatsign", "noatsign"},
		{"@weird.com", "@weird.com"},
	}

	for _, tt := range tests {
		if got := DisplayNameFromEmail(tt.email); got != tt.want {
			t.Errorf("DisplayNameFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestAvatarURLIsDeterministic(t *testing.T) {
	a := AvatarURL("ayse@example.com")
	b := AvatarURL("ayse@example.com")
	if a != b {
		t.Errorf("same email produced different avatars: %q vs %q", a, b)
	}

	other := AvatarURL("mehmet@example.com")
	if a == other {
		t.Error("different emails produced the same avatar")
	}

	escaped := AvatarURL("a b@example.com")
	if want := "https://i.pravatar.cc/300?u=a+b%40example.com"; escaped != want {
		t.Errorf("AvatarURL escaping = %q, want %q", escaped, want)
	}
}
