// Package commands implements the CLI commands for rcpack.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rcpack/internal/app"
	"go.trai.ch/rcpack/internal/build"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/tui"
)

// Application represents the application logic interface.
type Application interface {
	ResolveConfig(path string) (string, error)
	Build(ctx context.Context, configPath string, names []string, opts app.BuildOptions) ([]domain.ArchiveResult, error)
	Manifest(ctx context.Context, configPath string, names []string) ([]domain.ArchiveResult, error)
	Emit(ctx context.Context, configPath string, names []string, opts app.BuildOptions) ([]domain.ArchiveResult, error)
	List(ctx context.Context, configPath, name string) ([]app.ListEntry, error)
	Verify(ctx context.Context, configPath, name string) (*domain.VerifyReport, error)
	Header(ctx context.Context, configPath, name, out string) (string, error)
	Deps(ctx context.Context, configPath, name string) ([]string, error)
	Watch(ctx context.Context, configPath string, names []string, opts app.WatchOptions) error
	Clean(ctx context.Context, configPath string, opts app.CleanOptions) error
}

// OutputSwitcher switches the logger between human and machine output.
type OutputSwitcher interface {
	SetJSON(enable bool)
}

// outputRedirector is implemented by outputs that can move to another writer.
type outputRedirector interface {
	SetOutput(w io.Writer)
}

// ProgressFeed streams pipeline progress to the terminal dashboard.
type ProgressFeed interface {
	tui.TapeSource
	Open()
	Stop()
}

// CLI represents the command line interface for rcpack.
type CLI struct {
	app      Application
	output   OutputSwitcher
	progress ProgressFeed
	rootCmd  *cobra.Command

	configFlag string
	jsonFlag   bool
}

// New creates a new CLI instance with the given app. output may be nil.
func New(a Application, output OutputSwitcher) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rcpack",
		Short:         "Pack resource trees into C byte-array sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		output:  output,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configFlag, "config", "c", "",
		"Path to "+domain.ConfigFileName+" (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().BoolVar(&c.jsonFlag, "json", false, "Log as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.jsonFlag && c.output != nil {
			c.output.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newManifestCmd())
	rootCmd.AddCommand(c.newEmitCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newHeaderCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetProgress enables the watch dashboard, fed from feed.
func (c *CLI) SetProgress(feed ProgressFeed) {
	c.progress = feed
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// config resolves the --config flag.
func (c *CLI) config() (string, error) {
	return c.app.ResolveConfig(c.configFlag)
}
