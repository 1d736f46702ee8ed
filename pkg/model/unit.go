package model

import (
	"fmt"
	"strings"

	"otdconvert/pkg/cfg"
)

// Unit is the length unit of a layout file.
type Unit int

const (
	Millimeters Unit = iota
	Inches
	TenthsOfInch
)

// ParseUnit maps the Dimension header value to a Unit. Matching ignores case
// and surrounding space.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm":
		return Millimeters, true
	case "inch":
		return Inches, true
	case "tinch":
		return TenthsOfInch, true
	}
	return Millimeters, false
}

// ToMM returns the number of millimeters in one unit.
func (u Unit) ToMM() float64 {
	switch u {
	case Inches:
		return cfg.MMPerInch
	case TenthsOfInch:
		return cfg.MMPerTenthsInch
	}
	return 1
}

// GCode returns the controller unit code.
func (u Unit) GCode() string {
	if u == Millimeters {
		return "G71"
	}
	return "G70"
}

func (u Unit) String() string {
	switch u {
	case Millimeters:
		return "mm"
	case Inches:
		return "inch"
	case TenthsOfInch:
		return "Tinch"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
