package enums

import "fmt"

// Era buckets products by the decade they shipped in.
type Era string

const (
	Era1950s Era = "1950s"
	Era1960s Era = "1960s"
	Era1970s Era = "1970s"
	Era1980s Era = "1980s"
	Era1990s Era = "1990s"
)

var validEras = []Era{
	Era1950s,
	Era1960s,
	Era1970s,
	Era1980s,
	Era1990s,
}

// String implements fmt.Stringer.
func (e Era) String() string {
	return string(e)
}

// IsValid reports whether the value is a known Era.
func (e Era) IsValid() bool {
	for _, candidate := range validEras {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEra converts raw input into an Era.
func ParseEra(value string) (Era, error) {
	for _, candidate := range validEras {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid era %q", value)
}

// EraValues lists every supported era.
func EraValues() []Era {
	out := make([]Era, len(validEras))
	copy(out, validEras)
	return out
}
