package terminal

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/dmarc-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigPath string
	Profile    string
}

// Bootstrap builds the report store once the global flags are known.
type Bootstrap func(ctx context.Context, flags GlobalFlags) (*report.Store, error)

// CLI represents the command-line interface
type CLI struct {
	bootstrap Bootstrap
	reporter  *export.Reporter
	logger    zerolog.Logger
	flags     GlobalFlags
	rootCmd   *cobra.Command

	once  sync.Once
	store *report.Store
	err   error
}

// Options contain configuration for the CLI
type Options struct {
	Bootstrap Bootstrap
	Output    io.Writer
	Logger    *zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		bootstrap: opts.Bootstrap,
		reporter:  export.NewReporter(opts.Output),
		logger:    logger,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides the process arguments, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dmarc-atlas",
		Short:         "DMARC report dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.flags.ConfigPath, "config", "c", "", "Path to the settings file (YAML)")
	cmd.PersistentFlags().StringVarP(&cli.flags.Profile, "profile", "p", "", "API profile to use")

	cmd.AddCommand(commands.NewDomainsCmd(cli.loadStore, cli.reporter))
	cmd.AddCommand(commands.NewReportCmd(cli.loadStore, cli.reporter))
	cmd.AddCommand(commands.NewDetailCmd(cli.loadStore, cli.reporter))
	cmd.AddCommand(commands.NewRangeCmd(cli.loadStore, cli.reporter))

	return cmd
}

func (cli *CLI) loadStore(ctx context.Context) (*report.Store, error) {
	cli.once.Do(func() {
		cli.store, cli.err = cli.bootstrap(ctx, cli.flags)
	})
	return cli.store, cli.err
}
