package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/saidoc/config"
	"github.com/dhamidi/saidoc/format"
	"github.com/dhamidi/saidoc/java/javadoc"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

// globals holds the settings shared by every command after config file,
// environment and flags were merged.
type globals struct {
	root       string
	configFile string
	format     string
	notation   string
	jobs       int
	verbose    int

	cfg *config.Config
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "saidoc",
		Short:         "Documentation metadata for Java sources",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.root, "root", "C", ".", "project root directory")
	flags.StringVar(&g.configFile, "config", "", "config file (default <root>/.saidoc/config.yaml)")
	flags.StringVarP(&g.format, "output", "o", "", "output format: json, yaml or text")
	flags.StringVar(&g.notation, "notation", "", "comment notation: auto, block, line or plain")
	flags.IntVarP(&g.jobs, "jobs", "j", 0, "parallel workers")
	flags.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCommentCmd(g))
	rootCmd.AddCommand(newLinksCmd(g))
	rootCmd.AddCommand(newFieldsCmd(g))
	rootCmd.AddCommand(newMethodsCmd(g))
	rootCmd.AddCommand(newEnumCmd(g))
	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

func (g *globals) load(cmd *cobra.Command) error {
	loader := config.NewLoader(g.root)
	if g.configFile != "" {
		loader.WithFile(g.configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("output") {
		cfg.Output.Format = g.format
	}
	if cmd.Flags().Changed("notation") {
		cfg.Notation = g.notation
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = g.jobs
	}
	cfg.Log.Verbosity += g.verbose
	if err := config.Validate(cfg); err != nil {
		return err
	}
	g.cfg = cfg

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logFile)
	return nil
}

func (g *globals) encoder(cmd *cobra.Command) (format.Encoder, error) {
	return format.New(g.cfg.Output.Format, cmd.OutOrStdout())
}

func (g *globals) commentNotation() javadoc.Notation {
	n, ok := javadoc.NotationByName(g.cfg.Notation)
	if !ok {
		return javadoc.Auto
	}
	return n
}

// printError writes err to stderr, one line per joined error.
func printError(err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			printError(e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("error:"), err)
}

// printWarnings reports errors that did not stop the command.
func printWarnings(err error) {
	if err == nil {
		return
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			printWarnings(e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", warningColor.Sprint("warning:"), err)
}
