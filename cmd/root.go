package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/reel/internal/catalog"
	"github.com/oakwood-commons/reel/internal/config"
	"github.com/oakwood-commons/reel/internal/form"
	"github.com/oakwood-commons/reel/internal/limiter"
	"github.com/oakwood-commons/reel/internal/movie"
	"github.com/oakwood-commons/reel/internal/ui"
	"github.com/oakwood-commons/reel/pkg/logger"
	"github.com/oakwood-commons/reel/pkg/settings"
)

// rootOptions holds flag values for one command tree.
type rootOptions struct {
	run      *settings.Run
	debug    bool
	theme    string
	keys     []string
	width    int
	height   int
	limit    limiter.Config
	closeLog func() error
}

// Execute runs the reel command line until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{run: settings.NewCliParams()}

	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Add movies to a catalog from a terminal form",
		Long: "reel opens a form for a movie record (title, description, image URL,\n" +
			"IMDB URL and IMDB id). Each field is checked when it loses focus and the\n" +
			"Add button is enabled once every field holds a valid value.",
		Example:       "\n  reel --catalog movies.yaml\n  reel --catalog movies.yaml --output json\n  reel --snapshot --keys 'Heat<Tab>'\n",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, opts)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.finishLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer opts.finishLog() //nolint:errcheck
			return runRoot(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.run.ConfigFile, "config", "", "path to a YAML config file (default $XDG_CONFIG_HOME/reel/config.yaml)")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level")
	pf.StringVar(&opts.run.LogFile, "log-file", "", "write JSON logs to this file (logs are discarded otherwise)")

	f := rootCmd.Flags()
	f.StringVar(&opts.run.CatalogPath, "catalog", "", "catalog file (.yaml, .json or .toml) loaded at start and saved on exit")
	f.StringVarP(&opts.run.Output, "output", "o", "", "print the catalog to stdout on exit: yaml|json|toml")
	f.StringVar(&opts.theme, "theme", "", "theme name (default from config; see 'reel config themes')")
	f.BoolVar(&opts.run.NoColor, "no-color", false, "disable color output")
	f.BoolVar(&opts.run.Snapshot, "snapshot", false, "render the form once and exit; honors --keys, --width and --height")
	f.StringArrayVar(&opts.keys, "keys", nil, "Simulate keys on startup. Use <Key> for special keys (<Tab>, <S-Tab>, <CR>, <C-s>, <BS>, <Esc>). Literal text types normally. Example: --keys \"Heat<Tab>\"")
	f.IntVar(&opts.width, "width", 0, "window width in columns")
	f.IntVar(&opts.height, "height", 0, "window height in rows")
	f.IntVar(&opts.limit.Limit, "limit", 0, "print at most N movies with --output")
	f.IntVar(&opts.limit.Offset, "offset", 0, "skip the first N movies with --output")
	f.IntVar(&opts.limit.Tail, "tail", 0, "print only the last N movies with --output (mutually exclusive with --limit; ignores --offset)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(newVersionCmd(), newConfigCmd(opts))
	return rootCmd
}

func setupLogging(cmd *cobra.Command, opts *rootOptions) error {
	var level int8
	if opts.debug {
		level = -1
	}
	opts.run.MinLogLevel = level

	var sink io.Writer
	if opts.run.LogFile != "" {
		w, closer, err := logger.OpenSink(opts.run.LogFile)
		if err != nil {
			return err
		}
		sink = w
		opts.closeLog = closer
	}
	lgr := logger.Setup(logger.Options{Level: level, Sink: sink}).WithValues("command", cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, &lgr)
	ctx = settings.IntoContext(ctx, opts.run)
	cmd.SetContext(ctx)
	return nil
}

func (o *rootOptions) finishLog() error {
	if o.closeLog == nil {
		return nil
	}
	closer := o.closeLog
	o.closeLog = nil
	logger.Sync()
	return closer()
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)

	cfg, err := loadMergedConfig(resolveConfigPath(opts.run.ConfigFile))
	if err != nil {
		return err
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	th, err := cfg.ActiveTheme()
	if err != nil {
		return err
	}

	noColor := cfg.UI.NoColor
	if changed(cmd.Flags(), "no-color") {
		noColor = opts.run.NoColor
	}
	catalogPath := firstNonEmpty(opts.run.CatalogPath, cfg.Catalog.Path)
	output := firstNonEmpty(opts.run.Output, cfg.Catalog.Output)

	if err := opts.limit.Validate(); err != nil {
		return err
	}

	var outFormat catalog.Format
	if output != "" {
		if outFormat, err = catalog.ParseFormat(output); err != nil {
			return fmt.Errorf("--output: %w", err)
		}
	}

	cat := catalog.New()
	if catalogPath != "" {
		if err := cat.Load(ctx, catalogPath); err != nil {
			return err
		}
	}

	f, err := movie.NewForm(func(ctx context.Context, mv movie.Movie) error {
		_, err := cat.Add(ctx, mv)
		return err
	}, form.WithLogger(lgr.WithName("form")))
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, f, cat, modelOptions(cfg, th, noColor))
	if opts.run.Snapshot {
		view := ui.RenderSnapshot(model, ui.SnapshotConfig{
			Width:     opts.width,
			Height:    opts.height,
			NoColor:   noColor,
			StartKeys: opts.keys,
		})
		fmt.Fprintln(cmd.OutOrStdout(), view)
	} else {
		err := ui.Run(ctx, model, ui.RunConfig{Width: opts.width, Height: opts.height, StartKeys: opts.keys})
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("run form: %w", err)
		}
		if ctx.Err() != nil {
			lgr.Info("interrupted", "reason", ctx.Err().Error())
		}
	}

	return finish(ctx, cmd.OutOrStdout(), cat, catalogPath, output, outFormat, opts.limit)
}

// finish saves the catalog and prints the selected window of it when requested.
func finish(ctx context.Context, out io.Writer, cat *catalog.Catalog, path, output string, format catalog.Format, window limiter.Config) error {
	if path != "" {
		if err := cat.Save(ctx, path); err != nil {
			return err
		}
	}
	if output != "" {
		if err := catalog.EncodeEntries(out, limiter.Apply(window, cat.Entries()), format); err != nil {
			return fmt.Errorf("print catalog: %w", err)
		}
	}
	return nil
}

func modelOptions(cfg config.Config, th config.Theme, noColor bool) ui.Options {
	return ui.Options{
		Heading:     cfg.App.Heading,
		SubmitLabel: cfg.App.SubmitLabel,
		InputWidth:  cfg.UI.InputWidth,
		CardWidth:   cfg.UI.CardWidth,
		MaxCards:    cfg.UI.MaxCards,
		Theme:       ui.ThemeFromConfig(th),
		NoColor:     noColor,
	}
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print reel version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadMergedConfig(resolveConfigPath(opts.run.ConfigFile))
			if err != nil {
				return err
			}
			out, err := marshalConfig(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadMergedConfig(resolveConfigPath(opts.run.ConfigFile))
			if err != nil {
				return err
			}
			for _, name := range cfg.ThemeNames() {
				marker := " "
				if name == cfg.UI.Theme {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	})
	return configCmd
}
