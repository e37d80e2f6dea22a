package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshModel() error {
	r.calls.Add(1)
	return r.err
}

func TestScheduler_RunsImmediately(t *testing.T) {
	target := &countingRefresher{}
	s := New(target, time.Hour, zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return target.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_ToleratesRefreshErrors(t *testing.T) {
	target := &countingRefresher{err: errors.New("boom")}
	s := New(target, time.Hour, zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return target.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_DisabledInterval(t *testing.T) {
	target := &countingRefresher{}
	s := New(target, 0, zap.NewNop())
	require.NoError(t, s.Start())
	s.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), target.calls.Load())
}
