package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"github.com/starlight-letter/starlight/pkg/commands/options"
	"github.com/starlight-letter/starlight/pkg/runner/regen"
)

func addRegen(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Throw away a reply and ask for a new one",
		Example: `
starlight regen --yes
starlight regen --on=2026-08-01 --yes
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			s := regen.Regen{
				On:        on,
				Confirmed: co.Yes,
				Service:   svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddConfirmArgs(cmd, co)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
