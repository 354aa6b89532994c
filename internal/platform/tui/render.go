package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/obonelli/the-witcher-trial/internal/core"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// GameView is everything the board needs to draw one frame.
type GameView struct {
	State          trial.State
	Roster         []trial.Glyph
	Lit            int // Lit sequence position, -1 when dark
	Closed         int // Positions past their tap window
	Decoys         []trial.Glyph
	Countdown      time.Duration
	InputRemaining time.Duration
	Threshold      float64 // Energy level that ends the run
	Width          int
	Player         string
}

const energyBarWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(10)
	litTileStyle = tileStyle.
			BorderForeground(lipgloss.Color("220")).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("220")).
			Bold(true)
	decoyTileStyle = tileStyle.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("239")).
			Foreground(lipgloss.Color("239"))
	litDecoyTileStyle = decoyTileStyle.
				BorderForeground(lipgloss.Color("208")).
				Foreground(lipgloss.Color("208"))

	hitMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("●")
	missMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✗")
	litMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("◉")
	pendingMark = dimStyle.Render("○")

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 4).
			Align(lipgloss.Center)
	failOverlayStyle = overlayStyle.BorderForeground(lipgloss.Color("9"))
)

// RenderGame draws the HUD, the glyph board and any phase overlay.
func RenderGame(v GameView) string {
	var b strings.Builder

	b.WriteString("\n")
	title := titleStyle.Render("T H E   T R I A L")
	if v.Player != "" {
		title += dimStyle.Render("   " + v.Player)
	}
	b.WriteString(centerText(title, v.Width))
	b.WriteString("\n\n")
	b.WriteString(centerText(renderHUD(v.State), v.Width))
	b.WriteString("\n")
	b.WriteString(centerText(renderEnergy(v.State.Energy, v.Threshold), v.Width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(renderBoard(v), v.Width))
	b.WriteString("\n")
	b.WriteString(centerText(renderProgress(v), v.Width))
	b.WriteString("\n\n")

	if overlay := renderOverlay(v); overlay != "" {
		b.WriteString(centerBlock(overlay, v.Width))
		b.WriteString("\n")
	}

	b.WriteString(centerText(dimStyle.Render(controlsFor(v.State)), v.Width))
	b.WriteString("\n")
	return b.String()
}

func renderHUD(s trial.State) string {
	field := func(label string, value any) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(fmt.Sprint(value))
	}
	mult := trial.StreakMultiplier(s.Momentum)
	parts := []string{
		field("LEVEL", s.Level),
		field("SCORE", s.Score),
		field("STREAK", s.Streak),
		field("MOMENTUM", fmt.Sprintf("%d (x%d)", s.Momentum, mult)),
		field("MODE", s.Mode),
	}
	return strings.Join(parts, "   ")
}

// renderEnergy draws the energy bar with a marker where the run ends.
func renderEnergy(energy, threshold float64) string {
	filled := core.Clamp(int(math.Round(energy*energyBarWidth)), 0, energyBarWidth)
	marker := int(math.Round(threshold * energyBarWidth))

	color := lipgloss.Color("10")
	switch {
	case energy < threshold+0.1:
		color = lipgloss.Color("9")
	case energy < threshold+0.3:
		color = lipgloss.Color("11")
	}
	fill := lipgloss.NewStyle().Foreground(color)

	var bar strings.Builder
	for i := 0; i < energyBarWidth; i++ {
		switch {
		case i == marker:
			bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("┃"))
		case i < filled:
			bar.WriteString(fill.Render("█"))
		default:
			bar.WriteString(dimStyle.Render("░"))
		}
	}
	return labelStyle.Render("ENERGY ") + bar.String() + valueStyle.Render(fmt.Sprintf(" %3.0f%%", energy*100))
}

// litGlyph returns the glyph of the lit position, if any.
func litGlyph(v GameView) (trial.Glyph, bool) {
	if v.Lit < 0 || v.Lit >= len(v.State.Sequence) {
		return "", false
	}
	return v.State.Sequence[v.Lit], true
}

func renderBoard(v GameView) string {
	lit, isLit := litGlyph(v)

	tiles := make([]string, 0, len(v.Roster))
	for i, g := range v.Roster {
		style := tileStyle
		if isLit && g == lit {
			style = litTileStyle
		}
		tiles = append(tiles, style.Render(fmt.Sprintf("%d\n%s", i+1, strings.ToUpper(string(g)))))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)

	if len(v.Decoys) == 0 {
		return board
	}

	// Decoys flash with the real glyph but never answer a tap.
	decoys := make([]string, 0, len(v.Decoys))
	for _, g := range v.Decoys {
		style := decoyTileStyle
		if isLit {
			style = litDecoyTileStyle
		}
		decoys = append(decoys, style.Render(fmt.Sprintf("~\n%s", strings.ToLower(string(g)))))
	}
	return lipgloss.JoinVertical(lipgloss.Center, board, lipgloss.JoinHorizontal(lipgloss.Top, decoys...))
}

// renderProgress shows one mark per sequence position.
func renderProgress(v GameView) string {
	s := v.State
	if len(s.Sequence) == 0 {
		return ""
	}

	marks := make([]string, len(s.Sequence))
	for i := range s.Sequence {
		switch {
		case s.Mode == trial.ModeClassic && i < s.InputIndex:
			marks[i] = hitMark
		case s.Mode == trial.ModeLive && i < len(s.LiveHits) && s.LiveHits[i]:
			marks[i] = hitMark
		case i == v.Lit:
			marks[i] = litMark
		case s.Mode == trial.ModeLive && i < v.Closed:
			marks[i] = missMark
		default:
			marks[i] = pendingMark
		}
	}
	line := strings.Join(marks, " ")

	if s.Phase == trial.PhaseAwaitingInput {
		line += dimStyle.Render(fmt.Sprintf("   %d/%d  %.1fs", s.InputIndex, len(s.Sequence), v.InputRemaining.Seconds()))
	}
	return line
}

func renderOverlay(v GameView) string {
	s := v.State
	switch {
	case s.Phase == trial.PhaseIntro:
		if v.Countdown > 0 {
			secs := int(math.Ceil(v.Countdown.Seconds()))
			return overlayStyle.Render(fmt.Sprintf("Watch the signs.\n\n%d", secs))
		}
		return overlayStyle.Render("Press enter to begin the trial")
	case s.Phase.Terminal():
		return failOverlayStyle.Render(failNarrative(s))
	case s.Paused:
		return overlayStyle.Render("PAUSED\n\np to resume")
	case s.Phase == trial.PhaseSuccess:
		msg := "Sequence complete"
		if s.RoundMisses == 0 {
			msg = "Flawless!"
		}
		return overlayStyle.Render(msg)
	case s.Phase == trial.PhaseAwaitingInput:
		return overlayStyle.Render("Your turn: repeat the sequence")
	}
	return ""
}

// failNarrative explains how the run ended and sums it up.
func failNarrative(s trial.State) string {
	var headline string
	switch s.EndReason {
	case trial.EndEnergy:
		headline = "Your strength gave out."
	case trial.EndTimeout:
		headline = "The signs faded before you answered."
	case trial.EndSurrender:
		headline = "You walked away from the trial."
	default:
		headline = "The trial is over."
	}
	return fmt.Sprintf("%s\n\nScore %d   Level %d\nAccuracy %.0f%%   Best streak %d",
		headline, s.Score, s.Level, s.Accuracy()*100, s.StreakMax)
}

func controlsFor(s trial.State) string {
	switch {
	case s.Phase.Terminal():
		return "R: Retry  |  B: Menu  |  Q: Quit"
	case s.Phase == trial.PhaseIntro:
		return "Enter: Start  |  B: Menu  |  Q: Quit"
	default:
		return "1-9: Tap sign  |  P: Pause  |  B: Give up  |  Q: Quit"
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block within width.
func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
