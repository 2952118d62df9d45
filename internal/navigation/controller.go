// Package navigation maps user actions to the visible screen and keeps the
// back-navigation history.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"io"

	"masroufi/internal/expenses"
	"masroufi/internal/handlers"
	applog "masroufi/internal/log"
	"masroufi/internal/models"
	"masroufi/internal/stats"
)

// Screens renders the individual views.
type Screens interface {
	Header(w io.Writer, title string, showBack bool)
	Message(w io.Writer, msg string)
	Login(w io.Writer, message string) error
	Home(w io.Writer) error
	AddForm(w io.Writer) error
	Stats(w io.Writer, r stats.Range) error
	Submit(amount, category, note string) (models.Expense, error)
}

// Sessions reports and changes the login state.
type Sessions interface {
	Present() bool
	Login(ctx context.Context) (models.Session, error)
	Logout() error
}

// Controller owns the navigation history for one app instance.
type Controller struct {
	screens  Screens
	sessions Sessions
	out      io.Writer
	logger   *applog.Logger

	stack      Stack
	statsRange stats.Range
}

// NewController creates a Controller writing screens to out.
func NewController(screens Screens, sessions Sessions, out io.Writer, logger *applog.Logger) *Controller {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Controller{
		screens:    screens,
		sessions:   sessions,
		out:        out,
		logger:     logger.WithComponent(applog.ComponentNavigation),
		statsRange: stats.Today,
	}
}

// Start shows home when a session exists and login otherwise.
func (c *Controller) Start() error {
	if c.sessions.Present() {
		return c.Navigate(ViewHome)
	}
	return c.Navigate(ViewLogin)
}

// Current returns the visible view.
func (c *Controller) Current() View {
	return c.stack.Top()
}

// History returns the navigation stack, base first.
func (c *Controller) History() []View {
	return c.stack.Views()
}

// Range returns the selected statistics window.
func (c *Controller) Range() stats.Range {
	return c.statsRange
}

// Navigate shows v. Login and home become the new base of the history;
// add and stats are pushed on top of it.
func (c *Controller) Navigate(v View) error {
	c.logger.Debug("navigate", applog.FieldView, string(v))

	switch v {
	case ViewLogin:
		c.stack.Reset(ViewLogin)
		return c.screens.Login(c.out, "")
	case ViewHome:
		if !c.sessions.Present() {
			return c.Navigate(ViewLogin)
		}
		// Home is always the new base, even with add or stats stacked.
		c.stack.Reset(ViewHome)
	case ViewAdd, ViewStats:
		if !c.sessions.Present() {
			return c.Navigate(ViewLogin)
		}
		if c.stack.Len() == 0 || c.stack.Base() == ViewLogin {
			c.stack.Reset(ViewHome)
		}
		c.stack.Push(v)
	default:
		return fmt.Errorf("unknown view %q", v)
	}
	return c.render(v)
}

// Back returns to the previous view without pushing it again. It reports
// false when there is nothing to go back to.
func (c *Controller) Back() (bool, error) {
	prev, ok := c.stack.Pop()
	if !ok {
		return false, nil
	}
	return true, c.render(prev)
}

// SetRange changes the statistics window and refreshes the stats view when
// it is visible.
func (c *Controller) SetRange(r stats.Range) error {
	c.statsRange = r
	if c.Current() != ViewStats {
		return nil
	}
	return c.render(ViewStats)
}

// Submit records an expense from the add view. Invalid input is reported
// on screen and keeps the form open; storage failures are returned.
func (c *Controller) Submit(amount, category, note string) error {
	if c.Current() != ViewAdd {
		if err := c.Navigate(ViewAdd); err != nil {
			return err
		}
		if c.Current() != ViewAdd {
			return nil
		}
	}

	if _, err := c.screens.Submit(amount, category, note); err != nil {
		if expenses.IsValidation(err) {
			c.screens.Message(c.out, err.Error())
			return nil
		}
		return fmt.Errorf("add expense: %w", err)
	}

	_, err := c.Back()
	return err
}

// Login authorizes through the session bridge. On failure the login view
// stays visible with the reason.
func (c *Controller) Login(ctx context.Context) error {
	if _, err := c.sessions.Login(ctx); err != nil {
		c.stack.Reset(ViewLogin)
		return c.screens.Login(c.out, loginFailure(err))
	}
	return c.Start()
}

// Logout drops the session and shows the login view.
func (c *Controller) Logout() error {
	if err := c.sessions.Logout(); err != nil {
		return err
	}
	return c.Navigate(ViewLogin)
}

func (c *Controller) render(v View) error {
	switch v {
	case ViewHome:
		c.screens.Header(c.out, handlers.TitleHome, false)
		return c.screens.Home(c.out)
	case ViewAdd:
		c.screens.Header(c.out, handlers.TitleAdd, true)
		return c.screens.AddForm(c.out)
	case ViewStats:
		c.screens.Header(c.out, handlers.TitleStats, true)
		return c.screens.Stats(c.out, c.statsRange)
	case ViewLogin:
		return c.screens.Login(c.out, "")
	}
	return fmt.Errorf("unknown view %q", v)
}

func loginFailure(err error) string {
	if errors.Is(err, context.Canceled) {
		return "Login cancelled"
	}
	return "Login failed: " + err.Error()
}
