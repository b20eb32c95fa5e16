package options

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/starlight-letter/starlight/pkg/timeutil"
)

const layoutISOShort = "1/2"

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-02-28" or --on="2/28".`)
}

func (o *OnOptions) GetOn() (timeutil.Day, error) {
	if o.OnString == "" {
		return timeutil.Day{}, nil
	}
	d, err := timeutil.Parse(o.OnString)
	if err != nil {
		// Short form keeps the current year.
		t, err := time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return timeutil.Day{}, err
		}
		return timeutil.Date(time.Now().Year(), t.Month(), t.Day()), nil
	}
	return d, nil
}
