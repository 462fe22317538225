package rdpgen

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/rdpgen/internal/version"
	"github.com/arthur-debert/rdpgen/pkg/cobrax/topics"
	"github.com/arthur-debert/rdpgen/pkg/config"
	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/arthur-debert/rdpgen/pkg/output"
	"github.com/arthur-debert/rdpgen/pkg/probe"
	"github.com/arthur-debert/rdpgen/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// Deps are the collaborators commands touch the system through. Zero fields
// select the real filesystem, stdin, process starter and network probes.
type Deps struct {
	Fs      afero.Fs
	Stdin   io.Reader
	Starter output.Starter
	// Probe replaces the live system probes; --context still wins.
	Probe probe.Probe
	// TempDir holds launched profiles; empty means the system temp dir.
	TempDir string
}

// app holds the global flag values shared by all commands.
type app struct {
	deps       Deps
	verbosity  int
	configPath string
	format     string
}

// NewRootCmd creates the root command wired to the real system.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(Deps{})
}

// NewRootCmdWith creates the root command over deps.
func NewRootCmdWith(deps Deps) *cobra.Command {
	initTemplateFormatting()

	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Starter == nil {
		deps.Starter = output.ExecStarter{}
	}
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "rdpgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newRenderCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newProbeCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	source, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, source, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// loadConfig builds the configuration with flag overrides applied last.
func (a *app) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.LoadOptions{Path: a.configPath, Overrides: overrides})
}

// printer returns a printer for command output in the --format format.
func (a *app) printer(cmd *cobra.Command) (*ui.Printer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok {
		format = format.Resolve(f)
	}
	return ui.NewPrinter(out, format), nil
}

// statusPrinter writes progress notes to stderr, keeping stdout for
// documents.
func (a *app) statusPrinter(cmd *cobra.Command) *ui.Printer {
	format := ui.FormatText
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		format = ui.DetectFormat(f)
	}
	return ui.NewPrinter(cmd.ErrOrStderr(), format)
}

// probe selects the network context: a --context fixture, the injected
// probe, or live system queries.
func (a *app) probe(cfg *config.Config) (probe.Probe, error) {
	if cfg.Probe.Context != "" {
		static, err := probe.LoadStatic(a.deps.Fs, cfg.Probe.Context)
		if err != nil {
			return nil, err
		}
		return static, nil
	}
	if a.deps.Probe != nil {
		return a.deps.Probe, nil
	}
	return probe.NewSystem(probe.NewExecRunner(cfg.Probe.CommandTimeout), cfg.Probe.PingTimeout), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().InitDefaultHelpCmd()
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Run == nil {
				return errors.New(errors.ErrInternal, MsgErrTopics)
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
