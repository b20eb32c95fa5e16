package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"github.com/starlight-letter/starlight/pkg/commands/options"
	"github.com/starlight-letter/starlight/pkg/runner/rewrite"
)

func addRewrite(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Tear up a letter so the day can start over",
		Example: `
starlight rewrite --yes
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
			s := rewrite.Rewrite{
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
