package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// logBuffer is the number of log lines queued between the audit and the view.
const logBuffer = 32

// App shows a spinner and the process log while one audit runs, then the
// result summary. It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	req    domain.AuditRequest
	ctx    context.Context
	cancel context.CancelFunc

	styles  *styles.Styles
	keys    *keymap.KeyMap
	help    help.Model
	spinner spinner.Model

	lines   chan string
	logs    []string
	started time.Time
	elapsed time.Duration

	result *domain.AuditResult
	err    error
	done   bool
	width  int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the progress model for one audit request.
func NewApp(ports *Ports, req domain.AuditRequest) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	app := &App{
		ports:   ports,
		req:     req,
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		lines:   make(chan string, logBuffer),
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())
	return app, nil
}

// WithContext derives the audit context from ctx.
func (a *App) WithContext(ctx context.Context) *App {
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a
}

// Init starts the audit and the spinner.
func (a *App) Init() tea.Cmd {
	a.started = time.Now()
	return tea.Batch(a.spinner.Tick, a.runAudit(), a.waitForLog())
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keys.Quit) && !a.done {
			a.cancel()
			a.err = context.Canceled
			a.done = true
			return a, tea.Quit
		}
		return a, nil

	case spinner.TickMsg:
		if a.done {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.LogLine:
		if a.done {
			return a, nil
		}
		a.logs = append(a.logs, msg.Line)
		return a, a.waitForLog()

	case messages.AuditCompleted:
		a.done = true
		a.elapsed = time.Since(a.started)
		a.result = msg.Result
		a.err = msg.Err
		if msg.Result != nil {
			a.logs = msg.Result.ProcessLogs
		}
		a.cancel()
		return a, tea.Quit
	}

	return a, nil
}

// View renders the current state.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("TNFD Disclosure Audit"))
	b.WriteString("\n\n")
	for _, line := range a.logs {
		b.WriteString(a.styles.Muted.Render("  " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case !a.done:
		b.WriteString(a.spinner.View())
		b.WriteString(" Auditing...\n\n")
		b.WriteString(a.help.View(a.keys))
		b.WriteString("\n")
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Audit failed: " + a.err.Error()))
		b.WriteString("\n")
	case a.result != nil:
		b.WriteString(a.styles.Success.Render(fmt.Sprintf("Audit complete in %s", a.elapsed.Round(time.Second))))
		b.WriteString("\n\n")
		b.WriteString(RenderSummary(a.result, a.styles))
	}

	return b.String()
}

// Result returns the completed audit, or nil.
func (a *App) Result() *domain.AuditResult {
	return a.result
}

// Err returns the audit error, context.Canceled when the user quit.
func (a *App) Err() error {
	return a.err
}

func (a *App) runAudit() tea.Cmd {
	ctx := a.ctx
	lines := a.lines
	req := a.req
	req.OnLog = func(line string) {
		select {
		case lines <- line:
		case <-ctx.Done():
		}
	}

	return func() tea.Msg {
		result, err := a.ports.Audit.RunAudit(ctx, req)
		close(lines)
		return messages.AuditCompleted{Result: result, Err: err}
	}
}

func (a *App) waitForLog() tea.Cmd {
	lines := a.lines
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return messages.LogLine{Line: line}
	}
}
