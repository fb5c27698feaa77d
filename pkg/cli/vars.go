package cli

import (
	"fmt"
	"strings"

	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/variables"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var varsCmd = &cobra.Command{
	Use:   "vars <file>",
	Short: "List the variables defined for a request file",
	Long: `List the variables defined for a request file: named requests, file
variables, and variables of the active environment.

Names defined by more than one source are reported on stderr; the first
source listed is the one used when resolving.`,
	Example: `  httpvars vars api.http --env local
  httpvars vars api.http --json`,
	Args: cobra.ExactArgs(1),
	RunE: runVars,
}

func init() {
	rootCmd.AddCommand(varsCmd)
}

// varRow is one line of the vars listing.
type varRow struct {
	Name      string           `json:"name"`
	Kinds     []variables.Kind `json:"kinds"`
	Redefined bool             `json:"redefined"`
}

func runVars(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}
	e, err := newEngine()
	if err != nil {
		return err
	}
	index, err := e.Definitions(cmd.Context(), doc)
	if err != nil {
		return err
	}

	rows := make([]varRow, 0, len(index))
	for _, name := range index.Names() {
		kinds := index[name]
		rows = append(rows, varRow{Name: name, Kinds: kinds, Redefined: len(kinds) > 1})
	}

	return printResult(rows, func() {
		if len(rows) == 0 {
			output.Println("No variables defined")
			return
		}
		title := cases.Title(language.English)
		w := output.Table()
		fmt.Fprintf(w, "%s\t%s\n", title.String("name"), title.String("defined in"))
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\n", r.Name, joinKinds(r.Kinds))
		}
		_ = w.Flush()

		for _, name := range index.Redefined() {
			output.Warn("%s is defined in %s; %s is used", name, joinKinds(index[name]), index[name][0])
		}
	})
}

func joinKinds(kinds []variables.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
