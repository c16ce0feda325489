package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/katalvlaran/portfolios/portfolio"
)

// previewMembers caps the members listed per portfolio in Summary.
const previewMembers = 5

// Summary renders the topN largest portfolios of m as Markdown. Ties are
// broken by portfolio index. topN <= 0 lists every portfolio.
func Summary(m *portfolio.Map, topN int) string {
	sizes := m.Sizes()

	// 1. Order ids by size desc, then id asc.
	ids := make([]int, len(sizes))
	singletons := 0
	for i, n := range sizes {
		ids[i] = i
		if n == 1 {
			singletons++
		}
	}
	slices.SortFunc(ids, func(a, b int) int {
		if c := cmp.Compare(sizes[b], sizes[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if topN > 0 && topN < len(ids) {
		ids = ids[:topN]
	}

	// 2. Totals.
	var sb strings.Builder
	total := 0
	for _, n := range sizes {
		total += n
	}
	sb.WriteString("# Portfolios\n\n")
	fmt.Fprintf(&sb, "- bbls: %d\n", total)
	fmt.Fprintf(&sb, "- portfolios: %d\n", len(sizes))
	fmt.Fprintf(&sb, "- singletons: %d\n\n", singletons)
	if len(ids) == 0 {
		return sb.String()
	}

	// 3. Table.
	sb.WriteString("| id | size | members |\n")
	sb.WriteString("|---:|---:|---|\n")
	for _, id := range ids {
		members, _ := m.At(id)
		shown := members
		if len(shown) > previewMembers {
			shown = shown[:previewMembers]
		}
		texts := make([]string, len(shown))
		for i, b := range shown {
			texts[i] = b.String()
		}
		cell := strings.Join(texts, ", ")
		if rest := len(members) - len(shown); rest > 0 {
			cell += fmt.Sprintf(", +%d more", rest)
		}
		fmt.Fprintf(&sb, "| %d | %d | %s |\n", id, len(members), cell)
	}

	return sb.String()
}

// Render styles md for a terminal of the given width using the style
// detected from the environment.
func Render(md string, width int) (string, error) {
	return render(md, width, glamour.WithAutoStyle())
}

// RenderStyle is Render with a named glamour style ("dark", "light",
// "notty", ...).
func RenderStyle(md, style string, width int) (string, error) {
	return render(md, width, glamour.WithStandardStyle(style))
}

func render(md string, width int, style glamour.TermRendererOption) (string, error) {
	opts := []glamour.TermRendererOption{style}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("report: renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("report: render: %w", err)
	}

	return out, nil
}
