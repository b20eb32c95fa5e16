package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/printers"
)

// Show prints the persona settings, with the API key masked.
type Show struct {
	Service *app.Service
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show settings, no service")
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Settings(n.Service.Settings(ctx))
	return nil
}

// Set updates a single settings field and prints the result.
type Set struct {
	Field string
	Value string

	Service *app.Service
}

func (n *Set) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not update settings, no service")
	}

	s := n.Service.Settings(ctx)
	if err := s.Set(n.Field, n.Value); err != nil {
		return err
	}
	if err := n.Service.SaveSettings(ctx, s); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Settings(s)
	return nil
}
