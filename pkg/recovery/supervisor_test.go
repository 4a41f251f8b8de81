package recovery

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/statusbar/internal/presentation/diag"
	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/aretw0/statusbar/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWaiter struct {
	mock.Mock
}

func (m *MockWaiter) Wait(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockReplacer struct {
	mock.Mock
}

func (m *MockReplacer) Replace(argv []string) error {
	return m.Called(argv).Error(0)
}

func newTestSupervisor(out, diagOut *bytes.Buffer, w Waiter, r Replacer) *Supervisor {
	return NewSupervisor(protocol.NewChannel(out), w,
		WithReporter(diag.NewPlainReporter(diagOut)),
		WithReplacer(r),
		WithArgs([]string{"statusbar", "config.toml"}),
	)
}

func TestSupervisor_Recover(t *testing.T) {
	var out, diagOut bytes.Buffer
	waiter := new(MockWaiter)
	replacer := new(MockReplacer)

	var renderedBeforeWait bool
	waiter.On("Wait", mock.Anything).Run(func(mock.Arguments) {
		renderedBeforeWait = out.Len() > 0
	}).Return(nil).Once()
	replacer.On("Replace", []string{"statusbar", "config.toml", NoInitFlag}).Return(nil).Once()

	sup := newTestSupervisor(&out, &diagOut, waiter, replacer)
	failure := domain.BlockError(domain.BlockRef{ID: 1, Name: "B"}, "value <0 & rising", nil)

	require.NoError(t, sup.Recover(context.Background(), failure))

	waiter.AssertExpectations(t)
	replacer.AssertExpectations(t)
	assert.True(t, renderedBeforeWait, "the error is shown before waiting")
	assert.Equal(t, PhaseReplace, sup.Phase())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 1, "exactly one update element")
	assert.Contains(t, lines[0], `"full_text":"Error in block &#39;B&#39;: value &lt;0 &amp; rising"`)
	assert.Contains(t, lines[0], `"urgent":true`)
	assert.True(t, strings.HasSuffix(lines[0], "],"))

	assert.Contains(t, diagOut.String(), "\n\nError in block 'B': value <0 & rising\n\n")
}

func TestSupervisor_Recover_ForeignError(t *testing.T) {
	var out, diagOut bytes.Buffer
	waiter := new(MockWaiter)
	replacer := new(MockReplacer)
	waiter.On("Wait", mock.Anything).Return(nil)
	replacer.On("Replace", mock.Anything).Return(nil)

	sup := newTestSupervisor(&out, &diagOut, waiter, replacer)
	require.NoError(t, sup.Recover(context.Background(), errors.New("boom")))
	assert.Contains(t, out.String(), `"full_text":"Error: boom"`)
}

func TestSupervisor_WaitFailure(t *testing.T) {
	var out, diagOut bytes.Buffer
	waiter := new(MockWaiter)
	replacer := new(MockReplacer)
	waiter.On("Wait", mock.Anything).Return(context.Canceled)

	sup := newTestSupervisor(&out, &diagOut, waiter, replacer)
	err := sup.Recover(context.Background(), domain.ConfigError("", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, PhaseFailed, sup.Phase())
	replacer.AssertNotCalled(t, "Replace", mock.Anything)
}

func TestSupervisor_ReplaceFailure(t *testing.T) {
	var out, diagOut bytes.Buffer
	waiter := new(MockWaiter)
	replacer := new(MockReplacer)
	execErr := errors.New("no such file or directory")
	waiter.On("Wait", mock.Anything).Return(nil)
	replacer.On("Replace", mock.Anything).Return(execErr)

	sup := newTestSupervisor(&out, &diagOut, waiter, replacer)
	err := sup.Recover(context.Background(), domain.ConfigError("", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, execErr)
	assert.Equal(t, domain.KindOther, domain.KindOf(err))
	assert.Equal(t, PhaseFailed, sup.Phase())
}

func TestSignalWaiter_IgnoresRefresh(t *testing.T) {
	ch := make(chan os.Signal, 3)
	ch <- domain.RefreshSignal
	ch <- domain.RefreshSignal

	w := NewSignalWaiter(ch, nil)
	done := make(chan error, 1)
	go func() { done <- w.Wait(context.Background()) }()

	select {
	case <-done:
		t.Fatal("returned before the restart signal")
	case <-time.After(50 * time.Millisecond):
	}

	ch <- domain.RestartSignal
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("restart signal not observed")
	}
}

func TestSignalWaiter_QueuedRestart(t *testing.T) {
	ch := make(chan os.Signal, 1)
	ch <- domain.RestartSignal

	require.NoError(t, NewSignalWaiter(ch, nil).Wait(context.Background()))
}

func TestSignalWaiter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSignalWaiter(make(chan os.Signal), nil).Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecReplacer(t *testing.T) {
	var gotPath string
	var gotArgv, gotEnv []string
	r := &ExecReplacer{
		Executable: func() (string, error) { return "/proc/self/exe-target", nil },
		Environ:    func() []string { return []string{"HOME=/root"} },
		Exec: func(path string, argv, env []string) error {
			gotPath, gotArgv, gotEnv = path, argv, env
			return nil
		},
	}

	require.NoError(t, r.Replace([]string{"statusbar", NoInitFlag}))
	assert.Equal(t, "/proc/self/exe-target", gotPath)
	assert.Equal(t, []string{"statusbar", NoInitFlag}, gotArgv)
	assert.Equal(t, []string{"HOME=/root"}, gotEnv)

	r.Executable = func() (string, error) { return "", errors.New("unsupported") }
	err := r.Replace(nil)
	assert.ErrorContains(t, err, "resolve executable")
}
