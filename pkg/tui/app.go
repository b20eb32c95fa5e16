package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/calendar"
	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/store"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// screen represents which view is showing.
type screen int

const (
	screenMenu screen = iota
	screenCompose
	screenDetail
	screenCalendar
	screenFortune
	screenSettings
)

type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

type storeEventMsg store.Event

type replyDoneMsg struct {
	day timeutil.Day
	err error
}

type fortuneDoneMsg struct {
	text string
	err  error
}

type rewriteDoneMsg struct {
	day timeutil.Day
	err error
}

// App is the mailbox model. It holds all the UI state.
type App struct {
	svc   *app.Service
	theme Theme

	screen  screen
	menu    list.Model
	compose textarea.Model
	spin    spinner.Model

	letters map[timeutil.Day]*letter.Record

	// calendar cursor
	cursor    timeutil.Day
	viewYear  int
	viewMonth time.Month

	// detail view
	detailDay timeutil.Day
	confirm   string // "regen" or "rewrite" while waiting for y/n

	// settings editor
	fields   []string
	fieldIdx int
	editing  bool
	input    textinput.Model

	events <-chan store.Event

	statusMsg string
	width     int
	height    int
}

// NewApp creates the mailbox model.
func NewApp(svc *app.Service, events <-chan store.Event) *App {
	items := []list.Item{
		menuItem{title: "Send a letter", desc: "Write to your friend across the night"},
		menuItem{title: "Read today's letter", desc: "What you wrote, and the reply once the day has passed"},
		menuItem{title: "Calendar", desc: "A month of letters and stamps"},
		menuItem{title: "Fortune", desc: "One small fortune per day"},
		menuItem{title: "Settings", desc: "Who you write to, and how they speak"},
		menuItem{title: "Exit", desc: "Close the mailbox"},
	}

	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "✉ STARLIGHT LETTER"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	compose := textarea.New()
	compose.Placeholder = "Dear friend..."
	compose.CharLimit = 0

	input := textinput.New()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	today := svc.Now()

	return &App{
		svc:       svc,
		theme:     DefaultTheme(),
		screen:    screenMenu,
		menu:      menu,
		compose:   compose,
		input:     input,
		spin:      sp,
		cursor:    today,
		viewYear:  today.Year(),
		viewMonth: today.Month(),
		fields:    settings.Fields(),
		events:    events,
	}
}

func (a *App) today() timeutil.Day {
	return a.svc.Now()
}

func (a *App) reload() {
	a.letters = a.svc.Letters(context.Background())
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	a.reload()
	return tea.Batch(a.waitForEvent(), a.spin.Tick)
}

func (a *App) waitForEvent() tea.Cmd {
	if a.events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-a.events
		if !ok {
			return nil
		}
		return storeEventMsg(ev)
	}
}

func (a *App) receiveCmd(day timeutil.Day) tea.Cmd {
	return func() tea.Msg {
		_, err := a.svc.GenerateReply(context.Background(), day)
		return replyDoneMsg{day: day, err: err}
	}
}

func (a *App) regenCmd(day timeutil.Day) tea.Cmd {
	return func() tea.Msg {
		_, err := a.svc.Regenerate(context.Background(), day, true)
		return replyDoneMsg{day: day, err: err}
	}
}

func (a *App) rewriteCmd(day timeutil.Day) tea.Cmd {
	return func() tea.Msg {
		err := a.svc.Rewrite(context.Background(), day, true)
		return rewriteDoneMsg{day: day, err: err}
	}
}

func (a *App) fortuneCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := a.svc.CheckFortune(context.Background(), a.today())
		return fortuneDoneMsg{text: text, err: err}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(max(0, msg.Width-6), max(0, msg.Height-8))
		a.compose.SetWidth(max(20, msg.Width-10))
		a.compose.SetHeight(max(4, msg.Height-12))
		return a, nil

	case storeEventMsg:
		a.reload()
		return a, a.waitForEvent()

	case replyDoneMsg:
		a.reload()
		if msg.err != nil {
			a.statusMsg = msg.err.Error()
		} else {
			a.statusMsg = fmt.Sprintf("A reply for %s has arrived.", msg.day)
		}
		return a, nil

	case rewriteDoneMsg:
		a.reload()
		if msg.err != nil {
			a.statusMsg = msg.err.Error()
		} else {
			a.statusMsg = "The letter has been torn up."
			a.screen = screenCompose
			a.compose.Reset()
			return a, a.compose.Focus()
		}
		return a, nil

	case fortuneDoneMsg:
		if msg.err != nil {
			a.statusMsg = msg.err.Error()
		} else {
			a.statusMsg = ""
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}
	}

	return a.updateFocused(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return tea.Quit, true
	}

	// confirm prompt intercepts everything on the detail screen
	if a.confirm != "" {
		switch key {
		case "y":
			action := a.confirm
			a.confirm = ""
			if action == "regen" {
				a.statusMsg = "Asking for a new reply..."
				return a.regenCmd(a.detailDay), true
			}
			return a.rewriteCmd(a.detailDay), true
		default:
			a.confirm = ""
			a.statusMsg = ""
			return nil, true
		}
	}

	switch a.screen {
	case screenMenu:
		switch key {
		case "q":
			return tea.Quit, true
		case "enter":
			return a.handleMenuSelection(), true
		}

	case screenCompose:
		switch key {
		case "esc":
			a.screen = screenMenu
			a.compose.Blur()
			return nil, true
		case "ctrl+s":
			return a.submitCompose(), true
		}

	case screenDetail:
		switch key {
		case "esc", "q":
			a.screen = screenCalendar
			return nil, true
		case "f":
			rec := a.letters[a.detailDay]
			// Today's letter keeps its suspense: no manual fetch until the
			// day has passed.
			if letter.StateOf(rec, a.detailDay, a.today()) == letter.StatePending &&
				a.detailDay.Before(a.today()) && !a.svc.Generating(a.detailDay) {
				a.statusMsg = "Fetching the reply..."
				return a.receiveCmd(a.detailDay), true
			}
			return nil, true
		case "r":
			rec := a.letters[a.detailDay]
			if letter.StateOf(rec, a.detailDay, a.today()) == letter.StateRepliedVisible {
				a.confirm = "regen"
				a.statusMsg = "Throw away this reply and ask for a new one? (y/n)"
			}
			return nil, true
		case "d":
			if _, ok := a.letters[a.detailDay]; ok {
				a.confirm = "rewrite"
				a.statusMsg = "Tear up this letter and start over? (y/n)"
			}
			return nil, true
		}

	case screenCalendar:
		if cmd, handled := a.handleCalendarKey(key); handled {
			return cmd, true
		}

	case screenFortune:
		switch key {
		case "esc", "q":
			a.screen = screenMenu
			return nil, true
		case "enter":
			if _, ok := a.svc.FortuneFor(context.Background(), a.today()); !ok {
				a.statusMsg = "Reading the stars..."
				return a.fortuneCmd(), true
			}
			return nil, true
		}

	case screenSettings:
		if cmd, handled := a.handleSettingsKey(key); handled {
			return cmd, true
		}
	}

	return nil, false
}

func (a *App) handleMenuSelection() tea.Cmd {
	item, ok := a.menu.SelectedItem().(menuItem)
	if !ok {
		return nil
	}
	a.statusMsg = ""

	switch item.title {
	case "Send a letter":
		today := a.today()
		if _, ok := a.letters[today]; ok {
			a.detailDay = today
			a.screen = screenDetail
			a.statusMsg = "Today's letter is already in the mailbox."
			return nil
		}
		a.screen = screenCompose
		a.compose.Reset()
		return a.compose.Focus()

	case "Read today's letter":
		a.detailDay = a.today()
		a.screen = screenDetail

	case "Calendar":
		today := a.today()
		a.cursor = today
		a.viewYear, a.viewMonth = today.Year(), today.Month()
		a.screen = screenCalendar

	case "Fortune":
		a.screen = screenFortune

	case "Settings":
		a.fieldIdx = 0
		a.editing = false
		a.screen = screenSettings

	case "Exit":
		return tea.Quit
	}
	return nil
}

func (a *App) submitCompose() tea.Cmd {
	text := a.compose.Value()
	_, err := a.svc.Submit(context.Background(), a.today(), text)
	if err != nil {
		a.statusMsg = err.Error()
		return nil
	}
	a.reload()
	a.compose.Blur()
	a.detailDay = a.today()
	a.screen = screenDetail
	a.statusMsg = "Sent. The reply will be waiting after midnight."
	return nil
}

func (a *App) handleCalendarKey(key string) (tea.Cmd, bool) {
	switch key {
	case "esc", "q":
		a.screen = screenMenu
		return nil, true
	case "left", "h":
		a.moveCursor(-1)
		return nil, true
	case "right", "l":
		a.moveCursor(1)
		return nil, true
	case "up", "k":
		a.moveCursor(-7)
		return nil, true
	case "down", "j":
		a.moveCursor(7)
		return nil, true
	case "p":
		a.shiftMonth(-1)
		return nil, true
	case "n":
		a.shiftMonth(1)
		return nil, true
	case "t":
		today := a.today()
		a.cursor = today
		a.viewYear, a.viewMonth = today.Year(), today.Month()
		return nil, true
	case "enter":
		a.detailDay = a.cursor
		a.screen = screenDetail
		a.statusMsg = ""
		return nil, true
	}
	return nil, false
}

func (a *App) moveCursor(days int) {
	a.cursor = a.cursor.AddDays(days)
	a.viewYear, a.viewMonth = a.cursor.Year(), a.cursor.Month()
}

func (a *App) shiftMonth(months int) {
	first := timeutil.Date(a.viewYear, a.viewMonth, 1).AddMonths(months)
	a.viewYear, a.viewMonth = first.Year(), first.Month()
	a.cursor = first
}

func (a *App) handleSettingsKey(key string) (tea.Cmd, bool) {
	if a.editing {
		switch key {
		case "esc":
			a.editing = false
			a.input.Blur()
			return nil, true
		case "enter":
			s := a.svc.Settings(context.Background())
			field := a.fields[a.fieldIdx]
			if err := s.Set(field, a.input.Value()); err != nil {
				a.statusMsg = err.Error()
				return nil, true
			}
			if err := a.svc.SaveSettings(context.Background(), s); err != nil {
				a.statusMsg = err.Error()
				return nil, true
			}
			a.editing = false
			a.input.Blur()
			a.statusMsg = fmt.Sprintf("Saved %s.", field)
			return nil, true
		}
		return nil, false
	}

	switch key {
	case "esc", "q":
		a.screen = screenMenu
		return nil, true
	case "up", "k":
		if a.fieldIdx > 0 {
			a.fieldIdx--
		}
		return nil, true
	case "down", "j":
		if a.fieldIdx < len(a.fields)-1 {
			a.fieldIdx++
		}
		return nil, true
	case "enter":
		s := a.svc.Settings(context.Background())
		field := a.fields[a.fieldIdx]
		value := s.Get(field)
		if field == "apiKey" {
			// Get returns the masked display form; edit the real key.
			value = s.APIKey
		}
		a.input.SetValue(value)
		a.editing = true
		return a.input.Focus(), true
	}
	return nil, false
}

func (a *App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch a.screen {
	case screenMenu:
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case screenCompose:
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case screenSettings:
		if a.editing {
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return a, tea.Batch(cmds...)
}

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.screen {
	case screenMenu:
		content = a.menu.View()
	case screenCompose:
		content = a.viewCompose()
	case screenDetail:
		content = a.viewDetail()
	case screenCalendar:
		content = a.viewCalendar()
	case screenFortune:
		content = a.viewFortune()
	case screenSettings:
		content = a.viewSettings()
	}

	busy := a.svc.Generating(a.today())
	if a.screen == screenDetail {
		busy = busy || a.svc.Generating(a.detailDay)
	}

	var footer []string
	if busy {
		footer = append(footer, a.spin.View()+a.theme.Faint.Render("the reply is being written..."))
	}
	if a.statusMsg != "" {
		footer = append(footer, a.theme.Subtitle.Render(a.statusMsg))
	}
	if len(footer) > 0 {
		content += "\n\n" + strings.Join(footer, "\n")
	}
	return content
}

func (a *App) viewCompose() string {
	title := a.theme.Title.Render("A letter for " + a.today().Long())
	help := a.theme.Help.Render("ctrl+s send  esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", a.compose.View(), "", help)
}

func (a *App) viewDetail() string {
	day := a.detailDay
	rec := a.letters[day]
	today := a.today()

	title := a.theme.Title.Render(day.Long())
	var body, help string

	switch letter.StateOf(rec, day, today) {
	case letter.StateEmpty:
		body = a.theme.Faint.Render("No letter was sent this day.")
		help = "esc back"
	case letter.StatePending:
		body = a.theme.Body.Render(rec.User) + "\n\n" +
			a.theme.Faint.Render("No reply yet.")
		if day.Before(today) && !a.svc.Generating(day) {
			help = "f fetch reply  d rewrite  esc back"
		} else {
			help = "d rewrite  esc back"
		}
	case letter.StateRepliedHidden:
		body = a.theme.Body.Render(rec.User) + "\n\n" +
			a.theme.Accent.Render("✉ The reply arrives tomorrow.")
		help = "d rewrite  esc back"
	case letter.StateRepliedVisible:
		body = a.theme.Body.Render(rec.User) + "\n\n" +
			a.theme.Frame.Render(rec.Reply) + "\n" +
			a.theme.Faint.Render("stamp "+rec.StampID)
		help = "r new reply  d rewrite  esc back"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", a.theme.Help.Render(help))
}

func (a *App) viewCalendar() string {
	title := a.theme.Title.Render(fmt.Sprintf("%s %d", a.viewMonth, a.viewYear))

	grid := calendar.Render(a.viewYear, a.viewMonth, a.letters, a.today(), calendar.Options{
		ShowHeader:      true,
		HeaderStyle:     a.theme.Calendar.Header,
		OtherMonthStyle: a.theme.Calendar.OtherMonth,
		PendingStyle:    a.theme.Calendar.Waiting,
		StampedStyle:    a.theme.Calendar.Stamped,
		TodayStyle:      a.theme.Calendar.Today,
		SelectedStyle:   a.theme.Calendar.Selected,
		Selected:        a.cursor,
	})

	help := a.theme.Help.Render("arrows move  n/p month  t today  enter open  esc back")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", grid, "", help)
}

func (a *App) viewFortune() string {
	today := a.today()
	title := a.theme.Title.Render("Fortune for " + today.Long())

	var body, help string
	if text, ok := a.svc.FortuneFor(context.Background(), today); ok {
		body = a.theme.Frame.Render(text)
		help = "esc back"
	} else {
		body = a.theme.Faint.Render("The stars have not been read today.")
		help = "enter check  esc back"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", a.theme.Help.Render(help))
}

func (a *App) viewSettings() string {
	title := a.theme.Title.Render("Settings")
	s := a.svc.Settings(context.Background())

	var rows []string
	for i, field := range a.fields {
		marker := "  "
		if i == a.fieldIdx {
			marker = a.theme.Accent.Render("> ")
		}
		value := s.Get(field)
		if value == "" {
			value = a.theme.Faint.Render("(empty)")
		}
		line := fmt.Sprintf("%s%-16s %s", marker, field, value)
		if i == a.fieldIdx && a.editing {
			line = fmt.Sprintf("%s%-16s %s", marker, field, a.input.View())
		}
		rows = append(rows, line)
	}

	help := a.theme.Help.Render("j/k move  enter edit  esc back")
	if a.editing {
		help = a.theme.Help.Render("enter save  esc cancel")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(rows, "\n"), "", help)
}
