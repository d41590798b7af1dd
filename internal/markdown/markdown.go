// Package markdown renders the pet ledger as a Markdown report.
package markdown

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-ports/pets/internal/models"
)

// RenderTable produces a Markdown table with one row per pet, numbered
// from 1 in the given order.
func RenderTable(pets []models.Pet) string {
	var sb strings.Builder
	sb.WriteString("| # | Name | Species | Age |\n")
	sb.WriteString("|---|------|---------|-----|\n")
	for i, p := range pets {
		fmt.Fprintf(&sb, "| %d | %s | %s | %d |\n", i+1, escapeCell(p.Name()), p.Species().Label(), p.Age())
	}
	return sb.String()
}

// RenderStats produces the statistics section body.
func RenderStats(stats models.Statistics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- **Total:** %d\n", stats.Total)
	if !stats.HasData() {
		return sb.String()
	}
	fmt.Fprintf(&sb, "- **Average age:** %.1f\n", *stats.AverageAge)
	sb.WriteString("- **By species:**\n")
	for _, sc := range stats.BySpecies {
		fmt.Fprintf(&sb, "  - %s: %d\n", sc.Species.Label(), sc.Count)
	}
	return sb.String()
}

// RenderReport builds the full report document with YAML front-matter.
func RenderReport(source string, pets []models.Pet, stats models.Statistics, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString("source: ")
	sb.WriteString(source)
	sb.WriteString("\n")
	sb.WriteString("generated: ")
	sb.WriteString(now.UTC().Format(time.RFC3339))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "total: %d\n", stats.Total)
	sb.WriteString("---\n")
	sb.WriteString("\n# Pets\n\n")
	if len(pets) == 0 {
		sb.WriteString("_No pets recorded._\n")
	} else {
		sb.WriteString(RenderTable(pets))
	}
	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString(RenderStats(stats))
	return sb.String()
}

// WriteReport renders the report and writes it to path.
func WriteReport(path, source string, pets []models.Pet, stats models.Statistics) error {
	content := RenderReport(source, pets, stats, time.Now())
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- reports do not contain secrets
}

// escapeCell keeps a value from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
