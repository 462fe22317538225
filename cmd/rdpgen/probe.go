package rdpgen

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newProbeCmd() *cobra.Command {
	var (
		hosts   []string
		context string
	)

	cmd := &cobra.Command{
		Use:     "probe",
		Short:   MsgProbeShort,
		Long:    MsgProbeLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("context") {
				overrides["probe.context"] = context
			}
			cfg, err := a.loadConfig(overrides)
			if err != nil {
				return err
			}
			p, err := a.probe(cfg)
			if err != nil {
				return err
			}
			printer, err := a.printer(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var rows [][]string
			rows = appendRows(rows, MsgProbeWifi, p.WifiSSIDs(ctx))
			rows = appendRows(rows, MsgProbeVPN, p.VPNNames(ctx))
			for _, host := range hosts {
				state := MsgUnreachable
				if p.CanPing(ctx, host) {
					state = MsgReachable
				}
				rows = append(rows, []string{fmt.Sprintf(MsgProbePing, host), state})
			}

			if err := printer.Title(MsgProbeTitle); err != nil {
				return err
			}
			return printer.Table([]string{MsgProbeKind, MsgProbeValue}, rows)
		},
	}

	cmd.Flags().StringArrayVar(&hosts, "ping", nil, MsgFlagPing)
	cmd.Flags().StringVar(&context, "context", "", MsgFlagContext)
	return cmd
}

// appendRows adds one row per value, or a single placeholder row when there
// are none.
func appendRows(rows [][]string, kind string, values []string) [][]string {
	if len(values) == 0 {
		return append(rows, []string{kind, MsgNone})
	}
	for _, v := range values {
		rows = append(rows, []string{kind, v})
	}
	return rows
}
