package association

import "testing"

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		parsed, err := ParseMethod(m.String())
		if err != nil {
			t.Errorf("ParseMethod(%q): %v", m, err)
		}
		if parsed != m {
			t.Errorf("ParseMethod(%q) = %q", m, parsed)
		}
	}

	if _, err := ParseMethod("median"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestMethods_StableOrder(t *testing.T) {
	ms := Methods()
	if len(ms) != 3 || ms[0] != MethodHarmonicSum || ms[1] != MethodSum || ms[2] != MethodMax {
		t.Errorf("unexpected method order: %v", ms)
	}
}
