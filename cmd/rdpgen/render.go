package rdpgen

import (
	"fmt"

	"github.com/arthur-debert/rdpgen/pkg/config"
	"github.com/arthur-debert/rdpgen/pkg/engine"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/arthur-debert/rdpgen/pkg/output"
	"github.com/arthur-debert/rdpgen/pkg/signer"
	"github.com/arthur-debert/rdpgen/pkg/template"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	template string
	argv     []string
	dest     string
	launch   bool
}

func (a *app) newRenderCmd() *cobra.Command {
	var (
		opts    renderOptions
		cert    string
		key     string
		context string
		wait    bool
	)

	cmd := &cobra.Command{
		Use:     "render <template|-> [-- args...]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("cert") {
				overrides["sign.cert"] = cert
				overrides["sign.key"] = key
			}
			if cmd.Flags().Changed("context") {
				overrides["probe.context"] = context
			}
			if cmd.Flags().Changed("wait") {
				overrides["launch.wait"] = wait
			}

			cfg, err := a.loadConfig(overrides)
			if err != nil {
				return err
			}

			opts.template = args[0]
			opts.argv = args[1:]
			return a.render(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dest, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&cert, "cert", "", MsgFlagCert)
	cmd.Flags().StringVar(&key, "key", "", MsgFlagKey)
	cmd.Flags().StringVar(&context, "context", "", MsgFlagContext)
	cmd.Flags().BoolVarP(&opts.launch, "launch", "l", false, MsgFlagLaunch)
	cmd.Flags().BoolVar(&wait, "wait", false, MsgFlagWait)
	cmd.MarkFlagsRequiredTogether("cert", "key")

	return cmd
}

func (a *app) render(cmd *cobra.Command, cfg *config.Config, opts renderOptions) error {
	logger := logging.GetLogger("cmd.render")

	tmpl, err := template.NewLoader(a.deps.Fs, cfg.TemplateOptions()).
		WithStdin(a.deps.Stdin).
		Load(opts.template)
	if err != nil {
		return err
	}

	p, err := a.probe(cfg)
	if err != nil {
		return err
	}

	dirs := append([]string{template.Dir(opts.template), "."}, cfg.Render.SearchPaths...)
	sgn := signer.New(signer.NewResolver(a.deps.Fs, dirs...))

	req := engine.Request{Args: opts.argv}
	if cfg.HasSign() {
		req.SignOverride = &engine.SignRequest{Cert: cfg.Sign.Cert, Key: cfg.Sign.Key}
	}

	doc, err := engine.New(p, sgn).Render(cmd.Context(), tmpl, req)
	if err != nil {
		return err
	}
	logger.Info().
		Str("template", tmpl.Name).
		Int("settings", len(doc.Settings)).
		Bool("signed", doc.Signed()).
		Msg("rendered")

	writer := output.NewWriter(a.deps.Fs, cfg.OutputFormat()).WithStdout(cmd.OutOrStdout())
	status := a.statusPrinter(cmd)

	if opts.dest != "" {
		if err := writer.Write(opts.dest, doc.Bytes); err != nil {
			return err
		}
		if opts.dest != output.StdoutName {
			msg := MsgWrote
			if doc.Signed() {
				msg = MsgWroteSigned
			}
			_ = status.Success(fmt.Sprintf(msg, opts.dest))
		}
	}

	if opts.dest == "" || opts.launch {
		names := output.NewNameGenerator(a.deps.Fs, a.deps.TempDir)
		launcher := output.NewLauncher(writer, names, a.deps.Starter, cfg.LaunchOptions())
		if err := launcher.Launch(doc.Bytes); err != nil {
			return err
		}
		logger.Debug().Str("command", cfg.Launch.Command).Msg("client launched")
	}
	return nil
}
