package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/pypulse/pypulse/internal/cmd/output"
	"github.com/pypulse/pypulse/internal/packages"
)

var _ output.Printer[packages.Package] = (*PackagePrinter)(nil)

// PackagePrinter renders a single search result entry.
type PackagePrinter struct {
	headerFunc output.WriteFunc[packages.Package]
	footerFunc output.WriteFunc[packages.Package]
}

func (p *PackagePrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *PackagePrinter) SetHeader(fn output.WriteFunc[packages.Package]) {
	p.headerFunc = fn
}

func (p *PackagePrinter) Item(w io.Writer, pkg packages.Package) error {
	if _, err := fmt.Fprintf(w, "  📦 %s\n", pkg.Name); err != nil {
		return err
	}

	if strings.TrimSpace(pkg.Version) != "" {
		if _, err := fmt.Fprintf(w, "  🏷️ Version: %s\n", pkg.Version); err != nil {
			return err
		}
	}

	if strings.TrimSpace(pkg.Summary) != "" {
		if _, err := fmt.Fprintf(w, "  ℹ️ Summary: %s\n", pkg.Summary); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "  🎯 Similarity: %.2f\n", pkg.Similarity); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "  📁 Registry: %s\n", pkg.Source); err != nil {
		return err
	}

	return nil
}

func (p *PackagePrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *PackagePrinter) SetFooter(fn output.WriteFunc[packages.Package]) {
	p.footerFunc = fn
}
