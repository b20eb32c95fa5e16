package send

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type Send struct {
	On      timeutil.Day
	Message string

	Service *app.Service
}

func (n *Send) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not send, no service")
	}
	if n.On.IsZero() {
		n.On = n.Service.Now()
	}

	rec, err := n.Service.Submit(ctx, n.On, n.Message)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Letter(n.On, rec, n.Service.Now())
	fmt.Println("Sent. The reply will be waiting after midnight.")

	// The reply is fetched in the background; hold the process open
	// until it lands or fails so the record is not left pending.
	n.Service.Wait()
	return nil
}
