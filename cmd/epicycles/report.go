package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/epicycle/dft"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8).Align(lipgloss.Right)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(12).Align(lipgloss.Right)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// Report renders the top coefficients of a spectrum, largest amplitude
// first, together with the share of the total amplitude they carry.
func Report(s *dft.Spectrum, top int) string {
	ranked := s.Ranked()
	if top <= 0 || top > len(ranked) {
		top = len(ranked)
	}
	var total, shown float64
	for i, c := range ranked {
		total += c.Amp
		if i < top {
			shown += c.Amp
		}
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("freq") + valueStyle.Render("amplitude") + valueStyle.Render("phase"))
	for _, c := range ranked[:top] {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d", c.Freq)) +
			valueStyle.Render(fmt.Sprintf("%.4f", c.Amp)) +
			valueStyle.Render(fmt.Sprintf("%.4f", c.Phase)))
	}
	share := 1.0
	if total > 0 {
		share = shown / total
	}
	footer := dimStyle.Render(fmt.Sprintf("%d of %d epicycles, %.1f%% of total amplitude",
		top, len(ranked), 100*share))
	header := headerStyle.Render(fmt.Sprintf("Spectrum of %d samples", s.N()))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, b.String(), footer))
}
