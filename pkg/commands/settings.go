package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"github.com/starlight-letter/starlight/pkg/runner/config"
	"github.com/starlight-letter/starlight/pkg/settings"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change who you write to",
		Example: `
starlight settings
starlight settings set characterPrompt a retired lighthouse keeper
starlight settings set formalSpeech false
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService()
			if err != nil {
				return err
			}
			s := config.Show{Service: svc}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	addSettingsSet(cmd)

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addSettingsSet(topLevel *cobra.Command) {
	field := ""
	value := ""

	cmd := &cobra.Command{
		Use:   "set [field] [value]",
		Short: fmt.Sprintf("Set a settings field, one of: %s", strings.Join(settings.Fields(), ", ")),
		Example: `
starlight settings set userName June
starlight settings set apiKey AIza...
`,
		ValidArgs: settings.Fields(),
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 2 {
				return errors.New("requires a field and a value")
			}
			field = args[0]
			value = strings.Join(args[1:], " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService()
			if err != nil {
				return err
			}
			s := config.Set{
				Field:   field,
				Value:   value,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
