package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"github.com/starlight-letter/starlight/pkg/commands/options"
	"github.com/starlight-letter/starlight/pkg/runner/cal"
)

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month of letters and stamps",
		Example: `
starlight calendar
starlight calendar --month=2026-07
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			year, month, err := mo.GetMonth()
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			s := cal.Calendar{
				Year:    year,
				Month:   month,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMonthArgs(cmd, mo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
