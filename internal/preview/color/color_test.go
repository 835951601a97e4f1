package color

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#9333ea", RGB{0x93, 0x33, 0xea}},
		{"F59E0B", RGB{0xf5, 0x9e, 0x0b}},
		{"#fff", RGB{0xff, 0xff, 0xff}},
		{"  #06b6d4 ", RGB{0x06, 0xb6, 0xd4}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#1234567", "#zzzzzz", "purple"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	c := Hex(0x9333ea)
	if c.String() != "#9333ea" {
		t.Errorf("String() = %s, want #9333ea", c.String())
	}
	if MustParse(c.String()) != c {
		t.Error("Parse(String()) should return the same color")
	}
}

func TestFloats(t *testing.T) {
	f := Hex(0xff0000).Floats()
	if f != [3]float32{1, 0, 0} {
		t.Errorf("Floats() = %v, want [1 0 0]", f)
	}
}

func TestUnmarshalTextKeepsValueOnError(t *testing.T) {
	c := Hex(0x112233)
	if err := c.UnmarshalText([]byte("nope")); err == nil {
		t.Fatal("expected error")
	}
	if c != Hex(0x112233) {
		t.Errorf("failed unmarshal changed color to %v", c)
	}
}
