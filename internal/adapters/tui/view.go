package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scheduler"
)

const (
	pedestalWidth = 22
	// rowsPerUnit converts pedestal height in scene units to terminal rows.
	rowsPerUnit = 2
	minWidth    = 40
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E8E8"))
	modeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	nameStyle  = lipgloss.NewStyle().Bold(true)
	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3A4256")).
			Align(lipgloss.Center)
	goldStyle = blockStyle.BorderForeground(lipgloss.Color("#F7B801"))
)

var modeTitles = map[model.DisplayMode]string{ //nolint:gochecknoglobals // display labels
	model.ModeIntro:     "Вступ",
	model.ModeTop3:      "Трійка лідерів",
	model.ModeRanks4_7:  "Місця 4–7",
	model.ModeRanks8_10: "Місця 8–10",
}

// View renders the current frame.
func (m *Model) View() string {
	var body string
	switch {
	case !m.loaded && m.err == nil:
		body = m.spinner.View() + " завантаження рейтингу…"
	case m.frame.Mode == model.ModeIntro:
		body = renderIntro(m.frame)
	default:
		body = renderTier(m.frame)
	}

	header := modeStyle.Render(modeTitles[m.frame.Mode]) +
		hintStyle.Render(fmt.Sprintf("  %.0fs", m.frame.Remaining))
	footer := hintStyle.Render("q вихід · r оновити")
	if m.err != nil {
		footer = errStyle.Render("помилка: "+m.err.Error()) + "\n" + footer
	}

	content := lipgloss.JoinVertical(lipgloss.Center, header, "", body, "", footer)
	// Never narrower than the content: lipgloss would wrap a pedestal row.
	width := max(minWidth, m.width, lipgloss.Width(content))
	if m.height > 0 {
		return lipgloss.Place(width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

func renderIntro(f scheduler.Frame) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(f.TitleTop),
		subStyle.Render(f.TitleBottom),
	)
}

func renderTier(f scheduler.Frame) string {
	if len(f.Pedestals) == 0 {
		return hintStyle.Render("немає учнів для цього слайда")
	}
	peds := append([]scheduler.Pedestal(nil), f.Pedestals...)
	sort.SliceStable(peds, func(i, j int) bool { return peds[i].Position.X < peds[j].Position.X })

	cols := make([]string, len(peds))
	for i, p := range peds {
		cols[i] = renderPedestal(p, f.Mode == model.ModeTop3)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}

func renderPedestal(p scheduler.Pedestal, podium bool) string {
	style := blockStyle
	if podium && p.Student.Rank == 1 {
		style = goldStyle
	}
	rows := max(1, int(p.Height*rowsPerUnit+0.5))
	lines := make([]string, 0, rows+3)
	lines = append(lines,
		labelStyle.Render(p.Label),
		nameStyle.Render(truncate(p.Student.FullName, pedestalWidth-4)),
		p.PointsLabel,
	)
	if p.Student.ClassLabel != "" {
		lines = append(lines, hintStyle.Render(p.Student.ClassLabel))
	}
	for len(lines) < rows+3 {
		lines = append(lines, "")
	}
	return style.Width(pedestalWidth).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
