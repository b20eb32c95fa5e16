package options

import (
	"time"

	"github.com/spf13/cobra"
)

const layoutMonth = "2006-01"

// MonthOptions
type MonthOptions struct {
	MonthString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.MonthString, "month", "",
		`Specify a month, example: --month="2026-08".`)
}

func (o *MonthOptions) GetMonth() (int, time.Month, error) {
	if o.MonthString == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse(layoutMonth, o.MonthString)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
