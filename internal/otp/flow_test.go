package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojgari/candidate-intake/internal/logging"
)

func newTestFlow(t *testing.T, opts ...FlowOption) (*Flow, *fakeMailer) {
	t.Helper()
	store := NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	mailer := &fakeMailer{}
	svc := NewService(store, mailer, testTokens(), testOTPConfig(), logging.NewTestLogger(t))
	return NewFlow(svc, opts...), mailer
}

func TestFlowHappyPath(t *testing.T) {
	closed := make(chan struct{})
	flow, mailer := newTestFlow(t,
		WithCloseDelay(10*time.Millisecond),
		WithOnClose(func() { close(closed) }),
	)
	ctx := context.Background()

	assert.Equal(t, StateCollectingEmail, flow.State())

	require.NoError(t, flow.SendCode(ctx, "asha@example.com"))
	assert.Equal(t, StateCollectingCode, flow.State())
	assert.Equal(t, "asha@example.com", flow.Email())

	token, err := flow.VerifyCode(ctx, mailer.codes[0])
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, StateVerified, flow.State())
	assert.Equal(t, token, flow.Token())

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close callback never fired")
	}
}

func TestFlowVerifyFailureStays(t *testing.T) {
	flow, mailer := newTestFlow(t)
	ctx := context.Background()

	require.NoError(t, flow.SendCode(ctx, "asha@example.com"))

	_, err := flow.VerifyCode(ctx, "000000")
	if mailer.codes[0] == "000000" {
		t.Skip("generated code collided with the deliberately wrong guess")
	}
	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.Equal(t, StateCollectingCode, flow.State())
}

func TestFlowVerifyBeforeSend(t *testing.T) {
	flow, _ := newTestFlow(t)
	_, err := flow.VerifyCode(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StateCollectingEmail, flow.State())
}

func TestFlowResendWhileCollectingCode(t *testing.T) {
	flow, mailer := newTestFlow(t)
	ctx := context.Background()

	require.NoError(t, flow.SendCode(ctx, "asha@example.com"))
	require.NoError(t, flow.SendCode(ctx, "asha@example.com"))
	assert.Len(t, mailer.codes, 2)
	assert.Equal(t, StateCollectingCode, flow.State())
}

func TestFlowReset(t *testing.T) {
	flow, mailer := newTestFlow(t)
	ctx := context.Background()

	require.NoError(t, flow.SendCode(ctx, "asha@example.com"))
	_, err := flow.VerifyCode(ctx, mailer.codes[0])
	require.NoError(t, err)

	flow.Reset()
	assert.Equal(t, StateCollectingEmail, flow.State())
	assert.Empty(t, flow.Email())
	assert.Empty(t, flow.Token())
}
