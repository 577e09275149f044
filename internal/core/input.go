// Package core holds the front-end neutral pieces shared by the terminal and
// SSH sessions: runtime settings and semantic player actions.
package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionMine           // M, Space - mine one click
	ActionBuy            // 1-9, Enter - buy a shop item
	ActionUp             // K, Up - move shop cursor
	ActionDown           // J, Down - move shop cursor
	ActionReset          // R - ask to reset progress
	ActionExport         // E - export the save to a file
	ActionImport         // I - import a save from a file
	ActionStats          // T - show session history
	ActionHelp           // ? - toggle full help
	ActionConfirm        // Y - confirm a pending question
	ActionBack           // N, Esc - cancel or go back
	ActionQuit           // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMine:
		return "Mine"
	case ActionBuy:
		return "Buy"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionReset:
		return "Reset"
	case ActionExport:
		return "Export"
	case ActionImport:
		return "Import"
	case ActionStats:
		return "Stats"
	case ActionHelp:
		return "Help"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press.
type Input struct {
	Action Action
	// Item is the shop slot for ActionBuy: 0-based, or -1 for the cursor row.
	Item int
}
