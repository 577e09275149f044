package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mining-tycoon/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Mine    key.Binding
	BuyItem key.Binding
	Buy     key.Binding
	Up      key.Binding
	Down    key.Binding
	Reset   key.Binding
	Export  key.Binding
	Import  key.Binding
	Stats   key.Binding
	Help    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mine, k.BuyItem, k.Buy, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mine, k.BuyItem, k.Buy, k.Up, k.Down},
		{k.Reset, k.Export, k.Import, k.Stats},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Mine: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "mine"),
		),
		BuyItem: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "buy item"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", "b"),
			key.WithHelp("enter", "buy selected"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "select up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "select down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import"),
		),
		Stats: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Back: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "no"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message on the game screen to a semantic input.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, k.Mine):
		return core.Input{Action: core.ActionMine}
	case key.Matches(msg, k.BuyItem):
		n, _ := strconv.Atoi(msg.String())
		return core.Input{Action: core.ActionBuy, Item: n - 1}
	case key.Matches(msg, k.Buy):
		return core.Input{Action: core.ActionBuy, Item: -1}
	case key.Matches(msg, k.Up):
		return core.Input{Action: core.ActionUp}
	case key.Matches(msg, k.Down):
		return core.Input{Action: core.ActionDown}
	case key.Matches(msg, k.Reset):
		return core.Input{Action: core.ActionReset}
	case key.Matches(msg, k.Export):
		return core.Input{Action: core.ActionExport}
	case key.Matches(msg, k.Import):
		return core.Input{Action: core.ActionImport}
	case key.Matches(msg, k.Stats):
		return core.Input{Action: core.ActionStats}
	case key.Matches(msg, k.Help):
		return core.Input{Action: core.ActionHelp}
	}
	return core.Input{Action: core.ActionNone}
}

// MapConfirmKey translates a key while a yes/no question is open.
func (k KeyMap) MapConfirmKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case msg.String() == "ctrl+c":
		return core.ActionQuit
	}
	return core.ActionNone
}
