// Package cli implements the ontoview command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/internal/config"
	"github.com/matzehuels/ontoview/pkg/buildinfo"
	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/observability"
	"github.com/matzehuels/ontoview/pkg/pipeline"
	"github.com/matzehuels/ontoview/pkg/session"
	"github.com/matzehuels/ontoview/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ontoview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Ontoview explores OWL class hierarchies",
		Long: `Ontoview loads an OWL ontology (RDF/XML), builds its class hierarchy and
lets you browse branches, labels and axioms, or lay the hierarchy out as a tree
and render it to SVG, PNG, PDF, DOT or JSON.

Commands take an optional document argument: a file path or an http(s) URL.
Without one, the configured default document is used, and without that the
built-in sample ontology.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/ontoview/config.toml)")

	// Register all subcommands
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.branchCommand())
	root.AddCommand(c.labelCommand())
	root.AddCommand(c.axiomsCommand())
	root.AddCommand(c.propertyCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment before any command
// runs, and routes library events to the debug log.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("no config path", "err", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.configPath = path

	observability.NewLogHooks(c.Logger).Install()
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	cfg := c.Config.Cache
	if noCache {
		cfg.Backend = config.BackendNone
	}
	cc, keyer, err := cfg.Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return cc, keyer, nil
}

// openSession loads the document of opts into a new session, showing a
// spinner while it is fetched and parsed.
func (c *CLI) openSession(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*session.Session, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", source.FromRef(opts.Source)))
	spinner.Start()
	sess, err := runner.Load(ctx, opts)
	spinner.Stop()
	if spinner.Cancelled() {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	info := sess.Info()
	prog.done(fmt.Sprintf("Loaded %d classes from %s", info.Nodes, info.Name))
	return sess, nil
}

// documentRef picks the document argument, falling back to the configured
// default.
func (c *CLI) documentRef(ref string) string {
	if ref != "" {
		return ref
	}
	return c.Config.Document
}

// =============================================================================
// Options Helpers
// =============================================================================

// docFlags are the flags shared by commands that load a document.
type docFlags struct {
	language string
	noCache  bool
	refresh  bool
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "lang", "l", "", "display language (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached documents and renders")
}

// viewFlags add the tree direction to docFlags.
type viewFlags struct {
	docFlags
	direction string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	f.docFlags.register(cmd)
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "tree direction: vertical, horizontal (default from config)")
}

// withSession loads ref with the flags applied and calls fn with the
// resulting session.
func (c *CLI) withSession(ctx context.Context, ref string, f docFlags, fn func(*session.Session) error) error {
	if f.language != "" {
		c.Config.Language = f.language
	}
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.pipelineOptions(ref)
	opts.Refresh = f.refresh
	sess, err := c.openSession(ctx, runner, opts)
	if err != nil {
		return err
	}
	return fn(sess)
}

// pipelineOptions builds pipeline options from the configuration.
func (c *CLI) pipelineOptions(ref string) pipeline.Options {
	lo := c.Config.LayoutOptions()
	return pipeline.Options{
		Source:      c.documentRef(ref),
		Language:    c.Config.Language,
		Direction:   c.Config.Direction,
		NodeWidth:   lo.NodeWidth,
		LevelHeight: lo.LevelHeight,
		CharWidth:   lo.CharWidth,
		Padding:     lo.Padding,
		Width:       lo.Width,
		Height:      lo.Height,
		Logger:      c.Logger,
	}
}

// optionalArg returns args[i], or "" when absent.
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
