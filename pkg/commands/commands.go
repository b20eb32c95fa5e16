package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/gen"
	"github.com/starlight-letter/starlight/pkg/store"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "starlight",
		Short: base.Wrap80("A little mailbox on your desk. Send a letter today, find the reply tomorrow."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addSend(topLevel)
	addReceive(topLevel)
	addRegen(topLevel)
	addRewrite(topLevel)
	addRead(topLevel)
	addCalendar(topLevel)
	addFortune(topLevel)
	addSettings(topLevel)
	addVersion(topLevel)
}

func newService() (*app.Service, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Persistence: p,
		Generator:   &gen.Gemini{},
	}, nil
}
