package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/outofforest/mmusim"
)

const maxCellsShown = 4

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)

func renderFrames(infos []mmusim.FrameInfo) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("FRAME", "RANGE", "PID", "IDX", "NEXT", "NONZERO BYTES").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, info := range infos {
		t.Row(
			fmt.Sprintf("%03d", info.Frame),
			fmt.Sprintf("%05x-%05x", info.Start, info.End),
			fmt.Sprintf("%d", info.Owner),
			fmt.Sprintf("%d", info.Index),
			fmt.Sprintf("%d", info.Next),
			renderCells(info.Cells),
		)
	}
	return t.String()
}

func renderCells(cells []mmusim.Cell) string {
	parts := make([]string, 0, maxCellsShown+1)
	for i, c := range cells {
		if i == maxCellsShown {
			parts = append(parts, fmt.Sprintf("+%d more", len(cells)-maxCellsShown))
			break
		}
		parts = append(parts, fmt.Sprintf("%05x:%02x", c.Address, c.Value))
	}
	return strings.Join(parts, " ")
}

func renderSummary(m *mmusim.Machine, st *stats) string {
	return summaryStyle.Render(fmt.Sprintf(
		"free frames: %d/%d, slices: %d, failed allocations: %d, dropped processes: %d",
		m.FreeFrames(), m.Layout().NumFrames(), st.slices, st.failures, st.dropped))
}
