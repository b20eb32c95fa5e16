package read

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type Read struct {
	On timeutil.Day

	Service *app.Service
}

func (n *Read) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not read, no service")
	}
	if n.On.IsZero() {
		n.On = n.Service.Now()
	}

	rec, _ := n.Service.Letter(ctx, n.On)
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Letter(n.On, rec, n.Service.Now())
	return nil
}
