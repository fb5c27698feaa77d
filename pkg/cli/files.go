package cli

import (
	"fmt"
	"strings"

	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/getmockd/httpvars/pkg/workspace"
	"github.com/spf13/cobra"
)

var filesWithVars bool

var filesCmd = &cobra.Command{
	Use:   "files [root]",
	Short: "List request files in a directory tree",
	Long: `List request files under root (default: current directory) that match the
configured patterns (default: **/*.http and **/*.rest).`,
	Example: `  httpvars files
  httpvars files ./api --vars`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.Flags().BoolVar(&filesWithVars, "vars", false, "Also list the variables each file defines")
}

func runFiles(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	paths, err := workspace.Find(root, cfg.Patterns)
	if err != nil {
		return err
	}
	if paths == nil {
		paths = []string{}
	}

	if !filesWithVars {
		return printResult(paths, func() {
			for _, p := range paths {
				output.Println(p)
			}
		})
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	results, err := workspace.Collect(cmd.Context(), e, paths)
	if err != nil {
		return err
	}
	return printResult(results, func() {
		w := output.Table()
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\n", r.Path, strings.Join(r.Index.Names(), " "))
		}
		_ = w.Flush()
	})
}
