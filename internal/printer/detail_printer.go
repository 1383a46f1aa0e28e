package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/pypulse/pypulse/internal/cmd/output"
	"github.com/pypulse/pypulse/internal/packages"
)

var _ output.Printer[packages.Detail] = (*DetailPrinter)(nil)

// DetailPrinter renders full package metadata including the maintenance assessment.
type DetailPrinter struct {
	headerFunc output.WriteFunc[packages.Detail]
	footerFunc output.WriteFunc[packages.Detail]
}

func (p *DetailPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *DetailPrinter) SetHeader(fn output.WriteFunc[packages.Detail]) {
	p.headerFunc = fn
}

func (p *DetailPrinter) Item(w io.Writer, d packages.Detail) error {
	if _, err := fmt.Fprintf(w, "📦 %s %s\n", d.Name, d.Version); err != nil {
		return err
	}

	if strings.TrimSpace(d.Summary) != "" {
		if _, err := fmt.Fprintf(w, "  ℹ️ Summary: %s\n", d.Summary); err != nil {
			return err
		}
	}

	if strings.TrimSpace(d.License) != "" {
		if _, err := fmt.Fprintf(w, "  📄 License: %s\n", d.License); err != nil {
			return err
		}
	}

	if strings.TrimSpace(d.Author) != "" {
		if _, err := fmt.Fprintf(w, "  👤 Author: %s\n", d.Author); err != nil {
			return err
		}
	}

	if strings.TrimSpace(d.Homepage) != "" {
		if _, err := fmt.Fprintf(w, "  🏠 Homepage: %s\n", d.Homepage); err != nil {
			return err
		}
	}

	if strings.TrimSpace(d.Repository) != "" {
		if _, err := fmt.Fprintf(w, "  🗂️ Repository: %s\n", d.Repository); err != nil {
			return err
		}
	}

	if strings.TrimSpace(d.RequiresPython) != "" {
		if _, err := fmt.Fprintf(w, "  🐍 Requires Python: %s\n", d.RequiresPython); err != nil {
			return err
		}
	}

	if len(d.Keywords) > 0 {
		if _, err := fmt.Fprintf(w, "  🔖 Keywords: %s\n", strings.Join(d.Keywords, ", ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "  🚀 Releases: %d\n", d.ReleaseCount); err != nil {
		return err
	}

	if err := p.printMaintenance(w, d.Maintenance); err != nil {
		return err
	}

	if len(d.RecentReleases) > 0 {
		if _, err := fmt.Fprintln(w, "  🕑 Recent releases..."); err != nil {
			return err
		}
		for _, r := range d.RecentReleases {
			if _, err := fmt.Fprintf(w, "    %s (%s)\n", r.Version, r.UploadedAt.Format("2006-01-02")); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *DetailPrinter) printMaintenance(w io.Writer, m packages.Maintenance) error {
	if _, err := fmt.Fprintf(w, "  ❤️ Maintenance: %d/100 (%s)\n", m.Score, m.Status); err != nil {
		return err
	}

	_, err := fmt.Fprintf(
		w,
		"     recency: %.1f, frequency: %.1f, releases last year: %d\n",
		m.RecencyScore,
		m.FrequencyScore,
		m.ReleasesLastYear,
	)

	return err
}

func (p *DetailPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *DetailPrinter) SetFooter(fn output.WriteFunc[packages.Detail]) {
	p.footerFunc = fn
}
