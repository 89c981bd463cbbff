package cli

import (
	"encoding/json"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/formula"
)

// formulaeCommand creates the formulae command.
func (c *CLI) formulaeCommand() *cobra.Command {
	var (
		interactive bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "formulae [name...]",
		Short: "Build and print the asset formulae",
		Long: `Formulae builds the formulae of every configured bundle and prints them as
JSON keyed by formula name. Pass names to print only those formulae, or
--interactive to browse them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			prog := newProgress(c.Logger)
			all, err := a.resource.Content(cmd.Context())
			if err != nil {
				return err
			}
			selected, err := selectFormulae(all, args)
			if err != nil {
				return err
			}

			if interactive {
				_, err := tea.NewProgram(NewFormulaListModel(selected)).Run()
				return err
			}

			if output == "" {
				return writeFormulae(cmd.OutOrStdout(), selected)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := writeFormulae(f, selected); err != nil {
				return err
			}
			prog.done("Wrote formulae")
			newPrinter(cmd.ErrOrStderr()).file(output)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the formulae interactively")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file instead of stdout")

	return cmd
}

// selectFormulae returns the named formulae, or all of them when names is empty.
func selectFormulae(all formula.Formulae, names []string) (formula.Formulae, error) {
	if len(names) == 0 {
		return all, nil
	}
	out := make(formula.Formulae, len(names))
	for _, name := range names {
		f, ok := all[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeFormulaNotFound, "formula %q does not exist", name)
		}
		out[name] = f
	}
	return out, nil
}

func writeFormulae(w io.Writer, f formula.Formulae) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
