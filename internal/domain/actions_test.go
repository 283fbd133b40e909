package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"PICK", ActionPick},
		{"pick", ActionPick},
		{"Hover", ActionHover},
		{"NEXT_LEVEL", ActionNextLevel},
		{"restart", ActionRestart},
		{"UNKNOWN_ACTION", ActionUnknown},
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
		{ActionPick, "PICK"},
		{ActionExpire, "EXPIRE"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_Flags(t *testing.T) {
	if ActionHover.IsRecorded() {
		t.Error("HOVER must not be recorded in replays")
	}
	if !ActionPick.IsRecorded() || !ActionExpire.IsRecorded() {
		t.Error("PICK and EXPIRE change state and must be recorded")
	}
	if ActionExpire.IsClientAction() {
		t.Error("EXPIRE is timer-only")
	}
}
