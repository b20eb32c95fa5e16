package receive

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type Receive struct {
	On timeutil.Day

	Service *app.Service
}

func (n *Receive) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not receive, no service")
	}
	if n.On.IsZero() {
		n.On = n.Service.Now()
	}

	rec, err := n.Service.GenerateReply(ctx, n.On)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Letter(n.On, rec, n.Service.Now())
	return nil
}
