// Package render draws the terminal summary shown after a run.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"repoprompt/internal/scanner"
	"repoprompt/pkg/types"
)

var (
	colorPrimary = lipgloss.Color("12")  // bright blue
	colorAccent  = lipgloss.Color("10")  // bright green
	colorWarn    = lipgloss.Color("11")  // bright yellow
	colorDim     = lipgloss.Color("240") // gray

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(16)

	styleValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleOK = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	styleWarn = lipgloss.NewStyle().
			Foreground(colorWarn)
)

// RunSummary is what the pipeline hands over for display.
type RunSummary struct {
	RootDir   string
	OutputDir string
	Format    string
	Preset    string
	Stats     scanner.Stats
	Chunks    []types.Chunk
	MaxTokens int
	Duration  time.Duration
	DryRun    bool
}

// Summary renders the post-run box.
func Summary(s RunSummary) string {
	totalTokens := 0
	for _, c := range s.Chunks {
		totalTokens += c.TotalTokens
	}

	title := "Generation complete"
	if s.DryRun {
		title = "Dry run (nothing written)"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")

	row(&b, "Root", s.RootDir)
	if !s.DryRun {
		row(&b, "Output", s.OutputDir)
	}
	row(&b, "Format", s.Format)
	if s.Preset != "" {
		row(&b, "Preset", s.Preset)
	}
	row(&b, "Files", fmt.Sprintf("%d scanned (%d text, %d binary, %d skipped)",
		s.Stats.TotalFiles, s.Stats.TextFiles, s.Stats.BinaryFiles, s.Stats.SkippedFiles))
	row(&b, "Chunks", fmt.Sprintf("%d", len(s.Chunks)))
	row(&b, "Tokens", fmt.Sprintf("~%d total", totalTokens))
	row(&b, "Duration", s.Duration.Round(time.Millisecond).String())

	if len(s.Chunks) > 0 {
		b.WriteString("\n")
		for _, c := range s.Chunks {
			b.WriteString(chunkLine(c, s.MaxTokens))
			b.WriteString("\n")
		}
	}

	if s.Stats.Errors > 0 {
		b.WriteString("\n")
		b.WriteString(styleWarn.Render(fmt.Sprintf("%d files failed to process", s.Stats.Errors)))
	}

	return styleBox.Render(strings.TrimRight(b.String(), "\n"))
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label))
	b.WriteString(styleValue.Render(value))
	b.WriteString("\n")
}

// chunkLine renders one chunk with a utilization bar. Chunks above 90%
// of capacity are flagged since estimation error can push them over a
// real model limit.
func chunkLine(c types.Chunk, maxTokens int) string {
	util := c.Utilization(maxTokens)
	bar := utilizationBar(util, 20)

	line := fmt.Sprintf("chunk %03d  %s %5.1f%%  %d files, %d tokens",
		c.Index+1, bar, util*100, len(c.Files), c.TotalTokens)

	if util > 0.9 {
		return styleWarn.Render(line)
	}
	return styleOK.Render(line)
}

func utilizationBar(util float64, width int) string {
	if util < 0 {
		util = 0
	}
	if util > 1 {
		util = 1
	}
	filled := int(util * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
