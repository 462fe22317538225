package rdpgen

import (
	"fmt"

	"github.com/arthur-debert/rdpgen/pkg/config"
	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateCommented())
				return err
			}

			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			out, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}
