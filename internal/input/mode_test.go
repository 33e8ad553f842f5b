package input

import "testing"

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeIdle, "IDLE"},
		{ModeEditable, "EDIT"},
		{Mode(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestMode_Predicates(t *testing.T) {
	if !ModeIdle.IsIdle() {
		t.Error("ModeIdle.IsIdle() should be true")
	}
	if !ModeEditable.IsEditable() {
		t.Error("ModeEditable.IsEditable() should be true")
	}

	// Cross-check
	if ModeIdle.IsEditable() {
		t.Error("ModeIdle.IsEditable() should be false")
	}
	if ModeEditable.IsIdle() {
		t.Error("ModeEditable.IsIdle() should be false")
	}
}
