package regen

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type Regen struct {
	On        timeutil.Day
	Confirmed bool

	Service *app.Service
}

func (n *Regen) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not regenerate, no service")
	}
	if n.On.IsZero() {
		n.On = n.Service.Now()
	}

	rec, err := n.Service.Regenerate(ctx, n.On, n.Confirmed)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Letter(n.On, rec, n.Service.Now())
	return nil
}
