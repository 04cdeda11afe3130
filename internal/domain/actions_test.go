package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"SET_MAX", ActionSetMax},
		{"set_max", ActionSetMax},
		{"Set_Interval", ActionSetInterval},
		{"INIT", ActionInit},
		{"MOVE", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionSetMax, "SET_MAX"},
		{ActionSetInterval, "SET_INTERVAL"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestParseEvent(t *testing.T) {
	for _, ev := range []EventType{EventAdmitted, EventMarkedLeaving, EventExited} {
		if got := ParseEvent(ev.String()); got != ev {
			t.Errorf("ParseEvent(%q) = %v, want %v", ev.String(), got, ev)
		}
	}
	if got := ParseEvent("GOAL"); got != EventUnknown {
		t.Errorf("ParseEvent(GOAL) = %v, want UNKNOWN", got)
	}
}
