package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/mining-tycoon/internal/core"
	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 2)
)

// minWidthForColumns is the width below which panels stack vertically.
const minWidthForColumns = 90

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeStats {
		return m.stats.View()
	}

	var b strings.Builder

	title := "MINING TYCOON"
	if m.config.Player != "" {
		title = fmt.Sprintf("MINING TYCOON - %s", m.config.Player)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.config.ScreenW)))
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left, m.renderWallet(), m.renderAchievements())
	if m.config.ScreenW >= minWidthForColumns {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.renderShop()))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, left, m.renderShop()))
	}
	b.WriteString("\n")

	switch m.mode {
	case modeConfirmReset:
		b.WriteString(questionStyle.Render("Reset all progress? This cannot be undone. (y/n)"))
		b.WriteString("\n")
	case modePrompt:
		label := "Export save to:"
		if m.prompt == promptImport {
			label = "Import save from:"
		}
		b.WriteString(questionStyle.Render(label + "\n" + m.input.View() + "\n" + dimStyle.Render("enter to confirm, esc to cancel")))
		b.WriteString("\n")
	}

	b.WriteString(m.renderToasts())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderWallet() string {
	e := m.engine
	rows := [][2]string{
		{"Coins", formatCoins(e.Currency())},
		{"Per click", formatCoins(e.ClickYield())},
		{"Per second", formatRate(e.PassiveYieldPerSecond())},
		{"Hash power", fmt.Sprintf("x%.2f", e.HashPower())},
		{"Click mult", fmt.Sprintf("x%.2f", e.ClickMultiplier())},
		{"Auto mult", fmt.Sprintf("x%.2f", e.AutoMultiplier())},
		{"Elapsed", formatElapsed(e.Elapsed().Seconds())},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Wallet"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
	}
	return panelStyle.Width(32).Render(b.String())
}

func (m Model) renderAchievements() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Achievements"))

	names := m.engine.Achievements()
	if len(names) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Italic(true).Render("none yet"))
	}
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(okStyle.Render("* " + name))
	}
	return panelStyle.Width(32).Render(b.String())
}

func (m Model) renderShop() string {
	c := m.engine.Catalog()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Shop"))
	for i, item := range m.shop {
		b.WriteString("\n")

		var line string
		var price float64
		if item.IsUpgrade() {
			spec, _ := c.Upgrade(item.Upgrade)
			price = m.engine.UpgradePrice(item.Upgrade)
			line = fmt.Sprintf("[%d] %-12s Lv %-3d %10s  %s",
				i+1, item.Upgrade, m.engine.Level(item.Upgrade), formatCoins(price), spec.Description)
		} else {
			spec, _ := c.Asset(item.Asset)
			price = m.engine.AssetPrice(item.Asset)
			line = fmt.Sprintf("[%d] %-12s x%-4d %10s  +%s/s  %s",
				i+1, spec.Name, m.engine.Count(item.Asset), formatCoins(price),
				formatRate(spec.YieldPerSecond), spec.Description)
		}

		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + line))
		case m.engine.CanAfford(price):
			b.WriteString("  " + line)
		default:
			b.WriteString(dimStyle.Render("  " + line))
		}
	}
	return panelStyle.Render(b.String())
}

func (m Model) renderToasts() string {
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.warn {
			lines = append(lines, warnStyle.Render(t.text))
		} else {
			lines = append(lines, okStyle.Render(t.text))
		}
	}
	return strings.Join(lines, "\n")
}

// formatCoins renders whole coins with thousands separators.
func formatCoins(v float64) string {
	return FormatCoins(v)
}

// FormatCoins renders whole coins with thousands separators. Balances past
// the int64 range keep their digits instead of wrapping.
func FormatCoins(v float64) string {
	return humanize.Commaf(math.Floor(v))
}

// formatRate renders a per-second yield with one decimal.
func formatRate(v float64) string {
	return humanize.CommafWithDigits(v, 1)
}

// formatElapsed renders seconds with one decimal.
func formatElapsed(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// ShopLine describes one shop row for non-interactive front-ends.
func ShopLine(c economy.Catalog, s *economy.State, item core.ShopItem) string {
	if item.IsUpgrade() {
		spec, _ := c.Upgrade(item.Upgrade)
		level := s.Level(item.Upgrade)
		price := economy.UpgradePrice(spec.BaseCost, c.UpgradeGrowth, level)
		return fmt.Sprintf("%-12s level %-3d next %s  %s", item.Upgrade, level, formatCoins(price), spec.Description)
	}
	spec, _ := c.Asset(item.Asset)
	owned := s.Count(item.Asset)
	price := economy.AssetPrice(spec.BasePrice, c.PriceGrowth, owned)
	return fmt.Sprintf("%-12s owned %-4d next %s  +%s/s each", spec.Name, owned, formatCoins(price), formatRate(spec.YieldPerSecond))
}
