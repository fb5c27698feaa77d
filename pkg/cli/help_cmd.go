package cli

import (
	"github.com/getmockd/httpvars/pkg/cli/help"
	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command|topic]",
	Short: "Help about any command or topic",
	Long: `Help about any command, or one of the reference topics:

` + help.ListTopics(),
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runHelp,
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
}

// runHelp shows command help when args name a command, and a topic
// otherwise.
func runHelp(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		if err := rootCmd.Help(); err != nil {
			return err
		}
		output.Printf("\nHelp topics:\n%s", help.ListTopics())
		return nil
	}

	if c, _, err := rootCmd.Find(args); err == nil && c != rootCmd {
		return c.Help()
	}

	content, err := help.GetTopic(args[0])
	if err != nil {
		return err
	}
	output.Println(content)
	return nil
}
