package otp

import (
	"context"
	"sync"
	"time"
)

// State is a position in the verification sub-flow.
type State int

const (
	StateCollectingEmail State = iota
	StateCollectingCode
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateCollectingEmail:
		return "collecting-email"
	case StateCollectingCode:
		return "collecting-code"
	case StateVerified:
		return "verified"
	}
	return "unknown"
}

// DefaultCloseDelay is how long a verified flow stays open before the
// close callback fires.
const DefaultCloseDelay = 2 * time.Second

// Flow is the per-candidate verification state machine:
// collecting-email → collecting-code → verified. A failed send keeps
// collecting-email; a failed verify keeps collecting-code; success
// schedules the close callback after a short fixed delay.
type Flow struct {
	mu         sync.Mutex
	state      State
	email      string
	token      string
	svc        *Service
	closeDelay time.Duration
	onClose    func()
	timer      *time.Timer
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithCloseDelay overrides the auto-close delay after verification.
func WithCloseDelay(d time.Duration) FlowOption {
	return func(f *Flow) { f.closeDelay = d }
}

// WithOnClose sets the callback fired after the close delay.
func WithOnClose(fn func()) FlowOption {
	return func(f *Flow) { f.onClose = fn }
}

// NewFlow creates a Flow in the collecting-email state.
func NewFlow(svc *Service, opts ...FlowOption) *Flow {
	f := &Flow{svc: svc, closeDelay: DefaultCloseDelay}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Email returns the email the flow is verifying.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Token returns the verification token after success, else "".
func (f *Flow) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// SendCode requests a code for the email and advances to
// collecting-code. Allowed while collecting the email or re-sending
// while collecting the code; on failure the state does not move.
func (f *Flow) SendCode(ctx context.Context, email string) error {
	f.mu.Lock()
	if f.state == StateVerified {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	if err := f.svc.Send(ctx, email); err != nil {
		return err
	}

	f.mu.Lock()
	f.email = email
	f.state = StateCollectingCode
	f.mu.Unlock()
	return nil
}

// VerifyCode checks the code for the flow's email. Success stores the
// verification token, marks the flow verified and schedules the close
// callback; failure keeps collecting-code.
func (f *Flow) VerifyCode(ctx context.Context, code string) (string, error) {
	f.mu.Lock()
	if f.state != StateCollectingCode {
		f.mu.Unlock()
		return "", ErrNotFound
	}
	email := f.email
	f.mu.Unlock()

	token, err := f.svc.Verify(ctx, email, code)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.token = token
	f.state = StateVerified
	if f.onClose != nil {
		f.timer = time.AfterFunc(f.closeDelay, f.onClose)
	}
	f.mu.Unlock()
	return token, nil
}

// Reset returns the flow to collecting-email and cancels a pending
// close.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.state = StateCollectingEmail
	f.email = ""
	f.token = ""
}
