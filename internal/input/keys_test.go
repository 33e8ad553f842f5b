package input

import "testing"

func TestEvent_String(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Rune('a'), "a"},
		{Ctrl('x'), "ctrl+x"},
		{Press(KeyEnter), "enter"},
		{Press(KeyBackspace), "backspace"},
		{Event{Key: Key(99)}, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEvent_IsCtrl(t *testing.T) {
	if !Ctrl('x').IsCtrl('x') {
		t.Error("Ctrl('x').IsCtrl('x') should be true")
	}
	if !Ctrl('X').IsCtrl('x') {
		t.Error("Ctrl('X').IsCtrl('x') should be true")
	}
	if Rune('x').IsCtrl('x') {
		t.Error("Rune('x').IsCtrl('x') should be false")
	}
	if Ctrl('z').IsCtrl('x') {
		t.Error("Ctrl('z').IsCtrl('x') should be false")
	}
}

func TestKey_IsNavigation(t *testing.T) {
	for _, k := range []Key{KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd, KeyPageUp, KeyPageDown} {
		if !k.IsNavigation() {
			t.Errorf("%s.IsNavigation() should be true", k)
		}
	}
	for _, k := range []Key{KeyRune, KeyEnter, KeyBackspace, KeyDelete, KeySpace} {
		if k.IsNavigation() {
			t.Errorf("%s.IsNavigation() should be false", k)
		}
	}
}
