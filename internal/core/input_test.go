package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionTap, "Tap"},
		{ActionPause, "Pause"},
		{ActionRetry, "Retry"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestTapCommand(t *testing.T) {
	cmd := Tap(3)
	if !cmd.Is(ActionTap) {
		t.Errorf("Tap(3).Action = %v, expected Tap", cmd.Action)
	}
	if cmd.Slot != 3 {
		t.Errorf("Tap(3).Slot = %d, expected 3", cmd.Slot)
	}
	if cmd.Is(ActionPause) {
		t.Error("Tap command should not report Pause")
	}
}
