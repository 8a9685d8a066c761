// Package tui renders the live census dashboard. The model is a three-state
// machine checked in precedence order: error, loading, ready. All upstream
// work arrives as messages from commands waiting on the session watch and
// the document subscription; nothing here writes back upstream.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pulsedash/pulse/internal/aggregate"
	"github.com/pulsedash/pulse/internal/identity"
	"github.com/pulsedash/pulse/pkg/domain"
	"github.com/pulsedash/pulse/pkg/store"
)

// DocumentStore is the slice of the store client the dashboard reads from.
type DocumentStore interface {
	Fetch(ctx context.Context, path string) (domain.Document, error)
	SubscribeDocument(ctx context.Context, path string) (*store.Subscription, error)
	Close() error
}

// Deps carries everything the dashboard needs. Session and Store are nil
// when FatalErr is set; the app then renders the blocking error screen and
// starts nothing.
type Deps struct {
	Session  *identity.Session
	Store    DocumentStore
	DocPath  string
	Logger   *zap.Logger
	Version  string
	FatalErr string
}

type appState int

const (
	stateError appState = iota
	stateLoading
	stateReady
)

// sessionMsg carries a resolved or changed identity session.
type sessionMsg struct {
	session domain.Session
}

// authClosedMsg signals the auth-state watch was released.
type authClosedMsg struct{}

// subscribedMsg carries the outcome of opening the document subscription.
type subscribedMsg struct {
	sub *store.Subscription
	err error
}

// docEventMsg carries one emission from a document subscription. The sub
// field identifies the feed so events from a torn-down subscription are
// dropped instead of leaking into the view.
type docEventMsg struct {
	sub *store.Subscription
	ev  store.Event
	ok  bool
}

// refreshMsg carries the result of a manual snapshot re-read.
type refreshMsg struct {
	doc domain.Document
	err error
}

type flashClearMsg struct{}

// App is the root Bubbletea model.
type App struct {
	deps Deps
	log  *zap.Logger

	fatalErr string
	subErr   string

	session domain.Session
	doc     domain.Document
	summary aggregate.Summary
	haveDoc bool
	updated time.Time

	sub *store.Subscription
	// subscribing marks an openSubscription in flight, so a republished
	// session cannot start a second concurrent subscribe.
	subscribing bool

	spin     spinner.Model
	width    int
	height   int
	helpOpen bool
	flash    string
}

// NewApp creates the dashboard application.
func NewApp(deps Deps) App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		deps:     deps,
		log:      log,
		fatalErr: deps.FatalErr,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}
}

func (a App) Init() tea.Cmd {
	if a.fatalErr != "" {
		return nil
	}
	return tea.Batch(a.spin.Tick, a.startSession())
}

// startSession performs sign-in off the dispatch loop. The UI stays in the
// loading state until the provider answers.
func (a App) startSession() tea.Cmd {
	sess := a.deps.Session
	return func() tea.Msg {
		return sessionMsg{session: sess.Start(context.Background())}
	}
}

// watchAuth waits for the next auth-state change. Exactly one of these is
// in flight at a time; it re-arms itself from Update.
func (a App) watchAuth() tea.Cmd {
	ch := a.deps.Session.Changes()
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return authClosedMsg{}
		}
		return sessionMsg{session: s}
	}
}

func (a App) openSubscription() tea.Cmd {
	st, path := a.deps.Store, a.deps.DocPath
	return func() tea.Msg {
		sub, err := st.SubscribeDocument(context.Background(), path)
		return subscribedMsg{sub: sub, err: err}
	}
}

func waitForDoc(sub *store.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		return docEventMsg{sub: sub, ev: ev, ok: ok}
	}
}

func (a App) refresh() tea.Cmd {
	st, path := a.deps.Store, a.deps.DocPath
	return func() tea.Msg {
		doc, err := st.Fetch(context.Background(), path)
		return refreshMsg{doc: doc, err: err}
	}
}

func clearFlashCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.state() != stateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case sessionMsg:
		prev := a.session
		a.session = msg.session
		cmds := []tea.Cmd{a.watchAuth()}
		if a.fatalErr == "" && a.subErr == "" && a.session.Ready {
			switch {
			case a.sub == nil && !a.subscribing:
				a.subscribing = true
				cmds = append(cmds, a.openSubscription())
			case a.sub != nil && prev.IdentityID != a.session.IdentityID:
				// The feed belongs to the old identity: release it before
				// opening its replacement.
				a.sub.Close()
				a.sub = nil
				a.haveDoc = false
				a.subscribing = true
				cmds = append(cmds, a.openSubscription(), a.spin.Tick)
			}
		}
		return a, tea.Batch(cmds...)

	case authClosedMsg:
		return a, nil

	case subscribedMsg:
		a.subscribing = false
		if msg.err != nil {
			a.subErr = msg.err.Error()
			a.log.Error("document subscription failed", zap.Error(msg.err))
			if a.sub != nil {
				a.sub.Close()
				a.sub = nil
			}
			return a, nil
		}
		if a.sub != nil {
			// A racing subscribe lost: keep the newest feed only.
			a.sub.Close()
		}
		a.sub = msg.sub
		return a, waitForDoc(a.sub)

	case docEventMsg:
		if msg.sub == nil || msg.sub != a.sub {
			return a, nil // stale feed, already torn down
		}
		if a.state() == stateError {
			// Late snapshot after the app already failed: release the feed
			// instead of re-arming it.
			a.sub.Close()
			a.sub = nil
			return a, nil
		}
		if !msg.ok {
			return a, nil
		}
		if msg.ev.Err != nil {
			a.subErr = msg.ev.Err.Error()
			a.sub.Close()
			a.sub = nil
			return a, nil
		}
		a.doc = msg.ev.Doc
		a.summary = aggregate.Summarize(a.doc)
		a.haveDoc = true
		a.updated = time.Now()
		return a, waitForDoc(a.sub)

	case refreshMsg:
		if msg.err != nil {
			a.log.Warn("manual refresh failed", zap.Error(msg.err))
			a.flash = "refresh failed"
			return a, clearFlashCmd()
		}
		a.doc = msg.doc
		a.summary = aggregate.Summarize(a.doc)
		a.haveDoc = true
		a.updated = time.Now()
		a.flash = "refreshed"
		return a, clearFlashCmd()

	case flashClearMsg:
		a.flash = ""
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.teardown()
		return a, tea.Quit
	case "h":
		a.helpOpen = !a.helpOpen
		return a, nil
	case "esc":
		a.helpOpen = false
		return a, nil
	case "r":
		if a.state() == stateReady {
			return a, a.refresh()
		}
	case "c":
		if a.state() == stateReady {
			if err := clipboard.WriteAll(summaryLine(a.summary)); err != nil {
				a.log.Warn("clipboard copy failed", zap.Error(err))
				a.flash = "copy failed"
			} else {
				a.flash = "summary copied"
			}
			return a, clearFlashCmd()
		}
	}
	return a, nil
}

// state applies the precedence order from the display contract: any error
// wins, then loading until both the session and the first snapshot arrived.
// A snapshot alone never makes the view ready.
func (a App) state() appState {
	if a.fatalErr != "" || a.subErr != "" {
		return stateError
	}
	if !a.session.Ready || !a.haveDoc {
		return stateLoading
	}
	return stateReady
}

// teardown releases the subscription, the auth watch, and the store
// connection, in that order.
func (a *App) teardown() {
	if a.sub != nil {
		a.sub.Close()
		a.sub = nil
	}
	if a.deps.Session != nil {
		a.deps.Session.Close()
	}
	if a.deps.Store != nil {
		if err := a.deps.Store.Close(); err != nil {
			a.log.Warn("store close failed", zap.Error(err))
		}
	}
}
