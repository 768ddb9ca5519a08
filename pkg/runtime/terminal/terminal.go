package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Blastoche/simu-solaire/pkg/runtime/terminal/commands"
	"github.com/Blastoche/simu-solaire/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	runner   commands.Runner
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Runner commands.Runner
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		runner:   opts.Runner,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simu-solaire",
		Short: "Solar installation estimation tool",
	}

	cmd.AddCommand(commands.NewSimulateCmd(cli.runner, cli.reporter))

	return cmd
}
