package audio

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello_world"},
		{"  The quick brown fox  ", "the_quick_brown_fox"},
		{"don't stop!", "dont_stop"},
		{"Peter Piper picked a peck", "peter_piper_picked_a_peck"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeNameCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "abcdefghij"
	}
	if got := sanitizeName(long); len(got) != maxNameLength {
		t.Errorf("len = %d, want %d", len(got), maxNameLength)
	}
}
