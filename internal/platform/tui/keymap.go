package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obonelli/the-witcher-trial/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a command.
// Returns the command (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (cmd core.Command, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.Command{Action: core.ActionQuit}, true
	}

	// Digits tap board slots, 1 being the leftmost.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.Tap(int(key[0] - '1')), false
	}

	switch key {
	case "w", "up", "k":
		return core.Command{Action: core.ActionUp}, false
	case "s", "down", "j":
		return core.Command{Action: core.ActionDown}, false
	case "enter", " ":
		return core.Command{Action: core.ActionConfirm}, false
	case "b", "esc":
		return core.Command{Action: core.ActionBack}, false
	case "p":
		return core.Command{Action: core.ActionPause}, false
	case "r":
		return core.Command{Action: core.ActionRetry}, false
	}

	return core.Command{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
