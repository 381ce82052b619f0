package domain

import "testing"

func TestMaskEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abcdef@x.com", "abc***@x.com"},
		{"abcd@x.com", "abc***@x.com"},
		{"abc@x.com", "abc@x.com"},
		{"ab@x.com", "ab@x.com"},
		{"a@x.com", "a@x.com"},
		{"noatsign", "noa***@email.com"},
		{"trailing@", "tra***@email.com"},
		{"ab@", "ab@email.com"},
		{"", "@email.com"},
	}
	for _, c := range cases {
		if got := MaskEmail(c.in); got != c.want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
