package fortune

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
)

type Fortune struct {
	Service *app.Service
}

func (n *Fortune) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not check fortune, no service")
	}
	today := n.Service.Now()

	pp := printers.PrettyPrint{}
	fmt.Println("")

	if text, ok := n.Service.FortuneFor(ctx, today); ok {
		pp.Fortune(today, text)
		return nil
	}

	text, err := n.Service.CheckFortune(ctx, today)
	if err != nil {
		return err
	}
	pp.Fortune(today, text)
	return nil
}
