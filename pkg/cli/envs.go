package cli

import (
	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

var envsCmd = &cobra.Command{
	Use:   "envs",
	Short: "List environments in the settings file",
	Long:  `List environments in the settings file. The active one is marked with *.`,
	Args:  cobra.NoArgs,
	RunE:  runEnvs,
}

func init() {
	rootCmd.AddCommand(envsCmd)
}

// envsOutput is the JSON form of the environment listing.
type envsOutput struct {
	Settings     string   `json:"settings"`
	Active       string   `json:"active"`
	Environments []string `json:"environments"`
}

func runEnvs(_ *cobra.Command, _ []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	out := envsOutput{
		Settings:     cfg.SettingsFile,
		Active:       e.ActiveEnvironment(),
		Environments: e.Environments(),
	}
	if out.Environments == nil {
		out.Environments = []string{}
	}
	return printResult(out, func() {
		if len(out.Environments) == 0 {
			output.Printf("No environments found in %s\n", out.Settings)
			return
		}
		for _, name := range out.Environments {
			marker := " "
			if name == out.Active {
				marker = "*"
			}
			output.Printf("%s %s\n", marker, name)
		}
	})
}
