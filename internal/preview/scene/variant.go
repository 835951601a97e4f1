package scene

import (
	"fmt"
	"strings"

	"github.com/Faultbox/booth-preview/internal/preview/color"
)

// Variant is a booth template preset.
type Variant int

const (
	Modern Variant = iota
	Tech
	Creative
	Corporate
	Eco
	Luxury
	Minimal

	variantCount
)

// DefaultVariant is used for unknown or malformed variant values.
const DefaultVariant = Modern

type variantInfo struct {
	name   string
	main   color.RGB
	accent color.RGB
	logo   color.RGB
	screen color.RGB
}

var variants = [variantCount]variantInfo{
	Modern:    {"modern", color.Hex(0x9333ea), color.Hex(0xf59e0b), color.Hex(0xffffff), color.Hex(0x1f2937)},
	Tech:      {"tech", color.Hex(0x3b82f6), color.Hex(0x06b6d4), color.Hex(0xffffff), color.Hex(0x0ea5e9)},
	Creative:  {"creative", color.Hex(0xec4899), color.Hex(0xf97316), color.Hex(0xffffff), color.Hex(0x1f2937)},
	Corporate: {"corporate", color.Hex(0x1e293b), color.Hex(0x64748b), color.Hex(0xffffff), color.Hex(0x1f2937)},
	Eco:       {"eco", color.Hex(0x22c55e), color.Hex(0x84cc16), color.Hex(0xffffff), color.Hex(0x1f2937)},
	Luxury:    {"luxury", color.Hex(0x7c3aed), color.Hex(0xfbbf24), color.Hex(0xfde68a), color.Hex(0x1f2937)},
	Minimal:   {"minimal", color.Hex(0x6b7280), color.Hex(0xd1d5db), color.Hex(0xffffff), color.Hex(0x1f2937)},
}

// Variants returns every known variant in template order.
func Variants() []Variant {
	out := make([]Variant, 0, variantCount)
	for v := Variant(0); v < variantCount; v++ {
		out = append(out, v)
	}
	return out
}

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v >= 0 && v < variantCount
}

// Resolve returns v, or DefaultVariant when v is unknown.
func (v Variant) Resolve() Variant {
	if !v.Valid() {
		return DefaultVariant
	}
	return v
}

// Next returns the following variant, wrapping around.
func (v Variant) Next() Variant {
	return (v.Resolve() + 1) % variantCount
}

// String returns the lowercase variant name.
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variants[v].name
}

// DefaultColors returns the template's main and accent colors.
func (v Variant) DefaultColors() (main, accent color.RGB) {
	info := variants[v.Resolve()]
	return info.main, info.accent
}

// ParseVariant matches a variant name case-insensitively.
// Unknown names return DefaultVariant and false.
func ParseVariant(name string) (Variant, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for v := Variant(0); v < variantCount; v++ {
		if variants[v].name == n {
			return v, true
		}
	}
	return DefaultVariant, false
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.Resolve().String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names fall back
// to DefaultVariant rather than failing the whole config.
func (v *Variant) UnmarshalText(text []byte) error {
	*v, _ = ParseVariant(string(text))
	return nil
}

// Config is the preview input owned by the host UI and passed by value.
type Config struct {
	Variant Variant
	Main    color.RGB
	Accent  color.RGB
}

// DefaultConfig returns the variant with its template colors.
func DefaultConfig(v Variant) Config {
	main, accent := v.DefaultColors()
	return Config{Variant: v.Resolve(), Main: main, Accent: accent}
}
