// Package tui is the interactive mailbox, built on Bubble Tea. The CLI
// commands and this UI share the same service; the UI refreshes itself from
// store watch events so replies written in the background show up without a
// manual reload.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starlight-letter/starlight/pkg/app"
)

type UI struct {
	Service *app.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return fmt.Errorf("can not open the mailbox, no service")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := u.Service.Watch(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewApp(u.Service, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	// Let any in-flight reply land before the process exits.
	u.Service.Wait()
	return nil
}
