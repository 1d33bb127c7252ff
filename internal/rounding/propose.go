package rounding

import (
	"context"
	"errors"
)

// ErrCancelled is returned by Propose when the user dismisses the dialog.
var ErrCancelled = errors.New("range dialog cancelled")

// Action is one user interaction with the range dialog.
type Action interface {
	apply(d *Draft)
}

type (
	EditMin        struct{ Text string }
	EditMax        struct{ Text string }
	EditStep       struct{ Text string }
	EditExpression struct{ Text string }
	EditDigits     struct{ Digits int }
	SelectMode     struct{ Mode Mode }
	Confirm        struct{}
	Cancel         struct{}
)

func (a EditMin) apply(d *Draft)        { d.SetMin(a.Text) }
func (a EditMax) apply(d *Draft)        { d.SetMax(a.Text) }
func (a EditStep) apply(d *Draft)       { d.SetStep(a.Text) }
func (a EditExpression) apply(d *Draft) { d.SetExpression(a.Text) }
func (a EditDigits) apply(d *Draft)     { d.SetExpressionDigits(a.Digits) }
func (a SelectMode) apply(d *Draft)     { d.SetMode(a.Mode) }
func (Confirm) apply(*Draft)            {}
func (Cancel) apply(*Draft)             {}

// Presenter shows a draft to the user and returns their next action.
// rejected is the validation error of the previous Confirm, or nil.
type Presenter interface {
	Next(ctx context.Context, d *Draft, rejected error) (Action, error)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(ctx context.Context, d *Draft, rejected error) (Action, error)

func (f PresenterFunc) Next(ctx context.Context, d *Draft, rejected error) (Action, error) {
	return f(ctx, d, rejected)
}

// Propose runs the range dialog for current until the user confirms a valid
// config or cancels. A rejected Confirm leaves the draft untouched and is
// reported to the presenter on the next round.
func Propose(ctx context.Context, current RangeConfig, p Presenter) (RangeConfig, error) {
	s := NewSession(current)
	for {
		if err := ctx.Err(); err != nil {
			return RangeConfig{}, err
		}

		action, err := p.Next(ctx, s.Draft(), s.Rejected())
		if err != nil {
			return RangeConfig{}, err
		}
		if s.Do(action) {
			return s.Result()
		}
	}
}

var errSessionOpen = errors.New("range dialog still open")

// Session is Propose one action at a time, for event loops that deliver
// user input as messages instead of blocking on a presenter.
type Session struct {
	draft    *Draft
	rejected error

	done   bool
	result RangeConfig
	err    error
}

// NewSession opens a dialog session prefilled from current.
func NewSession(current RangeConfig) *Session {
	return &Session{draft: NewDraft(current)}
}

// Draft returns the live dialog state.
func (s *Session) Draft() *Draft { return s.draft }

// Rejected returns the validation error of the last Confirm, cleared by the
// next action.
func (s *Session) Rejected() error { return s.rejected }

// Done reports whether the session has been confirmed or cancelled.
func (s *Session) Done() bool { return s.done }

// Do applies one action and reports whether the session is finished. A nil
// action cancels. Actions after the session finished are ignored.
func (s *Session) Do(action Action) bool {
	if s.done {
		return true
	}
	s.rejected = nil

	switch a := action.(type) {
	case nil, Cancel:
		s.done, s.err = true, ErrCancelled
	case Confirm:
		cfg, err := s.draft.Confirm()
		if err != nil {
			s.rejected = err
			return false
		}
		s.done, s.result = true, cfg
	default:
		a.apply(s.draft)
	}
	return s.done
}

// Result returns the confirmed config, ErrCancelled, or an error while the
// session is still open.
func (s *Session) Result() (RangeConfig, error) {
	if !s.done {
		return RangeConfig{}, errSessionOpen
	}
	return s.result, s.err
}

// Script is a Presenter that replays a fixed list of actions and cancels
// once they run out. Rejected holds the last validation error it was shown.
type Script struct {
	Actions  []Action
	Rejected error

	next int
}

func (s *Script) Next(_ context.Context, _ *Draft, rejected error) (Action, error) {
	s.Rejected = rejected
	if s.next >= len(s.Actions) {
		return Cancel{}, nil
	}
	a := s.Actions[s.next]
	s.next++
	return a, nil
}
