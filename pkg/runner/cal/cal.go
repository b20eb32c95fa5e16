package cal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
)

type Calendar struct {
	Year  int
	Month time.Month

	Service *app.Service
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show calendar, no service")
	}
	today := n.Service.Now()
	if n.Year == 0 || n.Month == 0 {
		n.Year, n.Month = today.Year(), today.Month()
	}

	letters := n.Service.Letters(ctx)

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Calendar(n.Year, n.Month, letters, today)
	return nil
}
