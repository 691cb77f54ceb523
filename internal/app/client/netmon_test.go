package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type errBox struct{ err error }

type fakeProber struct {
	err atomic.Value
}

func (p *fakeProber) Ping(context.Context) error {
	if v := p.err.Load(); v != nil {
		return v.(errBox).err
	}
	return nil
}

func (p *fakeProber) setErr(err error) {
	p.err.Store(errBox{err})
}

func TestMonitorTransitionTriggersCallbackOnce(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(&fakeProber{}, func() { fired.Add(1) }, testLogger())

	m.SetOnline(true)
	m.SetOnline(true) // already online, no second trigger
	m.SetOnline(false)
	m.SetOnline(true)

	assert.Eventually(t, func() bool { return fired.Load() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestMonitorOfflineTransitionIsSilent(t *testing.T) {
	var fired atomic.Int32
	m := NewMonitor(&fakeProber{}, func() { fired.Add(1) }, testLogger())

	m.SetOnline(false)
	assert.False(t, m.IsOnline())
	assert.Zero(t, fired.Load())
}

func TestMonitorPollDetectsRecovery(t *testing.T) {
	prober := &fakeProber{}
	prober.setErr(errors.New("down"))

	var fired atomic.Int32
	m := NewMonitor(prober, func() { fired.Add(1) }, testLogger())
	m.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	assert.False(t, m.IsOnline())

	prober.setErr(nil)
	assert.Eventually(t, func() bool { return m.IsOnline() },
		time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return fired.Load() >= 1 },
		time.Second, 5*time.Millisecond)
}

func TestMonitorStopWithoutStart(t *testing.T) {
	m := NewMonitor(&fakeProber{}, nil, testLogger())

	finished := make(chan struct{})
	go func() {
		m.Stop()
		m.Stop()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked with no poll loop running")
	}
}

func TestMonitorStopTwiceAfterStart(t *testing.T) {
	m := NewMonitor(&fakeProber{}, nil, testLogger())
	m.Start(context.Background())

	m.Stop()
	assert.NotPanics(t, m.Stop)
}
