// Package tui is the desk surface of the application: a small terminal
// frontend over the session manager and the controllers. It covers the
// daily routine of the front desk, signing in, reviewing the day's
// agenda, changing the password and locking the screen; everything else
// goes through the controllers programmatically.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"practice-manager/internal/controller"
	"practice-manager/internal/model"
	"practice-manager/internal/session"
)

var ErrUserQuit = errors.New("user quit")

const timeRounding = time.Second

type screen int

const (
	screenLogin screen = iota
	screenMenu
	screenAgenda
	screenPassword
	screenLocked
)

type (
	loginDoneMsg struct {
		user *model.User
		err  error
	}
	agendaLoadedMsg struct {
		items []model.Appointment
		err   error
	}
	passwordChangedMsg struct{ err error }
	lockedMsg          struct {
		token string
		err   error
	}
	resumeDoneMsg struct{ err error }
)

type appModel struct {
	ctx           context.Context
	sessions      *session.Manager
	controllers   *controller.Controller
	currentScreen screen

	login    loginModel
	menu     menuModel
	agenda   agendaModel
	password passwordModel

	resumeToken string
	errMsg      string
	err         error
}

func newAppModel(ctx context.Context, sess *session.Manager, ctrl *controller.Controller) appModel {
	return appModel{
		ctx:           ctx,
		sessions:      sess,
		controllers:   ctrl,
		currentScreen: screenLogin,
		login:         newLoginModel(),
		menu:          newMenuModel(),
		agenda:        newAgendaModel(),
		password:      newPasswordModel(),
	}
}

// Run drives the terminal frontend until the user quits or signs out.
func Run(ctx context.Context, sess *session.Manager, ctrl *controller.Controller) error {
	m := newAppModel(ctx, sess, ctrl)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if app, ok := final.(appModel); ok && app.err != nil && !errors.Is(app.err, ErrUserQuit) {
		return app.err
	}
	return nil
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.err = ErrUserQuit
			return m, tea.Quit
		}
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.login = newLoginModel()
		m.currentScreen = screenMenu
		return m, nil
	case agendaLoadedMsg:
		m.agenda.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.agenda.items = msg.items
		if m.agenda.idx >= len(m.agenda.items) {
			m.agenda.idx = 0
		}
		return m, nil
	case passwordChangedMsg:
		m.password.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.password = newPasswordModel()
		m.currentScreen = screenMenu
		return m, nil
	case lockedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.resumeToken = msg.token
		m.sessions.Logout()
		m.currentScreen = screenLocked
		return m, nil
	case resumeDoneMsg:
		if msg.err != nil {
			// token expired with the session; back to the password prompt
			m.resumeToken = ""
			m.errMsg = "session expired, sign in again"
			m.currentScreen = screenLogin
			return m, nil
		}
		m.errMsg = ""
		m.resumeToken = ""
		m.currentScreen = screenMenu
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenMenu:
		return m.updateMenu(msg)
	case screenAgenda:
		return m.updateAgenda(msg)
	case screenPassword:
		return m.updatePassword(msg)
	case screenLocked:
		return m.updateLocked(msg)
	}
	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLogin:
		body = m.login.View()
	case screenMenu:
		body = m.menu.view(m.sessions.Info())
	case screenAgenda:
		body = m.agenda.View()
	case screenPassword:
		body = m.password.View()
	case screenLocked:
		body = titleStyle.Render("Locked") + "\n\n" +
			helpStyle.Render("enter resume session  ctrl+c quit")
	}
	if m.errMsg != "" {
		body += "\n\n" + errorStyle.Render(m.errMsg)
	}
	return appStyle.Render(body)
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.login.inputs, m.login.focus = focusNext(m.login.inputs, m.login.focus)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login.inputs, m.login.focus = focusPrev(m.login.inputs, m.login.focus)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			email := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if email == "" || pass == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(email, pass)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.menu.idx > 0 {
			m.menu.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.menu.idx < len(m.menu.items)-1 {
			m.menu.idx++
		}
	case key.Matches(keyMsg, keys.lock):
		return m, m.cmdLock()
	case key.Matches(keyMsg, keys.enter):
		switch m.menu.idx {
		case 0:
			m.agenda.loading = true
			m.currentScreen = screenAgenda
			return m, tea.Batch(m.agenda.spinner.Tick, m.cmdLoadAgenda())
		case 1:
			m.password = newPasswordModel()
			m.currentScreen = screenPassword
		case 2:
			return m, m.cmdLock()
		case 3:
			m.sessions.Logout()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) updateAgenda(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.errMsg = ""
			m.currentScreen = screenMenu
		case key.Matches(msg, keys.up):
			if m.agenda.idx > 0 {
				m.agenda.idx--
			}
		case key.Matches(msg, keys.down):
			if m.agenda.idx < len(m.agenda.items)-1 {
				m.agenda.idx++
			}
		case key.Matches(msg, keys.refresh):
			if m.agenda.loading {
				return m, nil
			}
			m.agenda.loading = true
			return m, tea.Batch(m.agenda.spinner.Tick, m.cmdLoadAgenda())
		}
	case spinner.TickMsg:
		if m.agenda.loading {
			var cmd tea.Cmd
			m.agenda.spinner, cmd = m.agenda.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) updatePassword(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.errMsg = ""
			m.currentScreen = screenMenu
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.password.inputs, m.password.focus = focusNext(m.password.inputs, m.password.focus)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.password.inputs, m.password.focus = focusPrev(m.password.inputs, m.password.focus)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			current := m.password.inputs[0].Value()
			next := m.password.inputs[1].Value()
			repeat := m.password.inputs[2].Value()
			if current == "" || next == "" {
				m.errMsg = "both passwords are required"
				return m, nil
			}
			if next != repeat {
				m.errMsg = "new passwords do not match"
				return m, nil
			}
			m.password.submitting = true
			return m, m.cmdChangePassword(current, next)
		}
	}

	var cmd tea.Cmd
	m.password.inputs[m.password.focus], cmd = m.password.inputs[m.password.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateLocked(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, keys.enter) {
		return m, m.cmdResume(m.resumeToken)
	}
	return m, nil
}

func (m appModel) cmdLogin(email, password string) tea.Cmd {
	ctx := m.ctx
	sess := m.sessions
	return func() tea.Msg {
		user, err := sess.Login(ctx, email, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m appModel) cmdLoadAgenda() tea.Cmd {
	ctx := m.ctx
	ctrl := m.controllers
	return func() tea.Msg {
		items, err := ctrl.AppointmentsForDay(ctx, time.Now())
		return agendaLoadedMsg{items: items, err: err}
	}
}

func (m appModel) cmdChangePassword(current, next string) tea.Cmd {
	ctx := m.ctx
	sess := m.sessions
	return func() tea.Msg {
		return passwordChangedMsg{err: sess.ChangePassword(ctx, current, next)}
	}
}

func (m appModel) cmdLock() tea.Cmd {
	sess := m.sessions
	return func() tea.Msg {
		token, err := sess.ResumeToken()
		return lockedMsg{token: token, err: err}
	}
}

func (m appModel) cmdResume(token string) tea.Cmd {
	ctx := m.ctx
	sess := m.sessions
	return func() tea.Msg {
		_, err := sess.Resume(ctx, token)
		return resumeDoneMsg{err: err}
	}
}

func focusNext(inputs []textinput.Model, focus int) ([]textinput.Model, int) {
	inputs[focus].Blur()
	focus = (focus + 1) % len(inputs)
	inputs[focus].Focus()
	return inputs, focus
}

func focusPrev(inputs []textinput.Model, focus int) ([]textinput.Model, int) {
	inputs[focus].Blur()
	focus = (focus - 1 + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return inputs, focus
}
