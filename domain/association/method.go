package association

import "fmt"

// Method identifies one scoring method. The set of methods is closed and
// dispatch is explicit: every Association carries one Score per method.
type Method string

// Method values.
const (
	MethodHarmonicSum Method = "harmonic-sum"
	MethodSum         Method = "sum"
	MethodMax         Method = "max"
)

// Methods returns all scoring methods in stable order.
func Methods() []Method {
	return []Method{MethodHarmonicSum, MethodSum, MethodMax}
}

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodHarmonicSum, MethodSum, MethodMax:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown scoring method: %q", s)
	}
}

// String returns the method name.
func (m Method) String() string { return string(m) }
