package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"github.com/starlight-letter/starlight/pkg/runner/fortune"
)

func addFortune(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "fortune",
		Short: "Check today's fortune",
		Example: `
starlight fortune
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService()
			if err != nil {
				return err
			}
			s := fortune.Fortune{
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
