package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/bower"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/formula"
	"github.com/matzehuels/bowerassets/pkg/naming"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [bundle...]",
		Short: "List all installed bower dependencies",
		Long: `List prints the installed packages of every configured bundle (or only the
named ones) together with the formulae they produce.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			bundles, err := a.manager.Select(args...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := newPrinter(cmd.ErrOrStderr())
			notReady := false
			for _, b := range bundles {
				pkgs, err := a.bower.GetDependencyMapping(ctx, b)
				switch {
				case errors.Is(err, errors.ErrCodeResolutionNotReady):
					status.warning("%s: not installed", b.Name)
					notReady = true
					continue
				case err != nil:
					return err
				}

				fmt.Fprintln(out, StyleTitle.Render(b.Name))
				fmt.Fprintln(out, packageTable(pkgs, naming.PackageNamingStrategy{}).Render())
				status.bundleStats(len(pkgs), 2*len(pkgs))
			}

			if notReady {
				status.nextStep("Generate the dependency cache", appName+" install")
			}
			return nil
		},
	}
}

// packageTable renders packages with the formulae they are built under.
func packageTable(pkgs []*bower.Package, n naming.Strategy) *table.Table {
	rows := make([][]string, 0, len(pkgs))
	for _, p := range pkgs {
		name := n.TranslateName(p.Name)
		version := p.Version
		if version == "" {
			version = "—"
		}
		deps := strings.Join(p.DependencyNames(), ", ")
		if deps == "" {
			deps = "—"
		}
		rows = append(rows, []string{
			p.Name,
			version,
			formula.CSSName(name) + " " + formula.JSName(name),
			strconv.Itoa(len(p.Styles)),
			strconv.Itoa(len(p.Scripts)),
			deps,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Package", "Version", "Formulae", "CSS", "JS", "Dependencies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			p := pkgs[row]
			if len(p.Styles) == 0 && len(p.Scripts) == 0 {
				return styleMissing
			}
			if col == 3 || col == 4 {
				return StyleNumber
			}
			return StyleValue
		})
}
