package brief

import (
	"fmt"
	"strings"

	"MacroGauge/internal/domain/models"
)

// Formats accepted by Render.
const (
	FormatBlog     = "blog"
	FormatWhatsApp = "whatsapp"
	FormatLinkedIn = "linkedin"
)

// section headings in the order the brief lays them out.
var sectionOrder = []struct {
	key     string
	heading string
}{
	{"fx", "FX Overview"},
	{"inflation", "Inflation"},
	{"fiscal", "Fiscal Overview"},
	{"tbills", "T-Bills & Bonds"},
	{"commodities", "Commodities"},
	{"yield_curve", "Yield Curve"},
}

// Render serializes the snapshot into the export document for the given
// platform. The blog variant keeps the full layout, the whatsapp variant
// collapses paragraph breaks, the linkedin variant condenses everything
// onto one line.
func Render(title string, snap *models.Snapshot, format string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", title, snap.Month)

	for _, sec := range sectionOrder {
		text, ok := snap.Sections[sec.key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n%s\n", sec.heading, text)
		// the bonds line shares the T-bills heading
		if sec.key == "tbills" {
			if bonds, ok := snap.Sections["bonds"]; ok {
				fmt.Fprintf(&b, "%s\n", bonds)
			}
		}
		b.WriteString("\n")
	}

	base := strings.TrimRight(b.String(), "\n") + "\n"

	switch format {
	case FormatBlog, "":
		return base, nil
	case FormatWhatsApp:
		return strings.ReplaceAll(base, "\n\n", "\n"), nil
	case FormatLinkedIn:
		condensed := strings.ReplaceAll(base, "\n\n", " | ")
		return strings.TrimSpace(strings.ReplaceAll(condensed, "\n", " ")), nil
	default:
		return "", fmt.Errorf("unknown brief format %q", format)
	}
}
