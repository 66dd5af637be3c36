package slug

import "testing"

func TestEncode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Note", "my-note"},
		{"A/B C", "a-b-c"},
		{"topics/Deep Dive.md", "topics-deep-dive.md"},
		{"pic.png", "pic.png"},
		{"", ""},
		{"already-slugged", "already-slugged"},
	}
	for _, c := range cases {
		if got := Encode(c.in); got != c.want {
			t.Errorf("Encode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	in := "Some Note/With Subdir.md"
	if Encode(in) != Encode(in) {
		t.Error("Encode is not deterministic")
	}
}
