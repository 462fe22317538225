package rdpgen

import (
	"fmt"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/template"
	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check <template>...",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			printer, err := a.printer(cmd)
			if err != nil {
				return err
			}

			loader := template.NewLoader(a.deps.Fs, cfg.TemplateOptions()).WithStdin(a.deps.Stdin)
			var failed []error
			for _, path := range args {
				if _, err := loader.Load(path); err != nil {
					failed = append(failed, err)
					_ = printer.Error(err)
					continue
				}
				_ = printer.Success(fmt.Sprintf(MsgCheckOK, path))
			}

			switch len(failed) {
			case 0:
				return nil
			case 1:
				return failed[0]
			default:
				return errors.Newf(errors.GetErrorCode(failed[0]), "%d of %d templates failed", len(failed), len(args))
			}
		},
	}
}
