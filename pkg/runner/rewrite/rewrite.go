package rewrite

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type Rewrite struct {
	On        timeutil.Day
	Confirmed bool

	Service *app.Service
}

func (n *Rewrite) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not rewrite, no service")
	}
	if n.On.IsZero() {
		n.On = n.Service.Now()
	}

	if err := n.Service.Rewrite(ctx, n.On, n.Confirmed); err != nil {
		return err
	}

	fmt.Printf("The letter for %s has been torn up. Send a new one with `starlight send`.\n", n.On)
	return nil
}
