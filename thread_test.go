package nexus

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestThreadNexus_SameGoroutineSameInstance(t *testing.T) {
	var n ThreadNexus[counter]

	first := n.Get()
	require.NotNil(t, first)
	assert.Same(t, first, n.Get(), "repeated access from one goroutine must hit the same slot")
}

func TestThreadNexus_DistinctPerGoroutine(t *testing.T) {
	var n ThreadNexus[counter]

	mine := n.Get()
	mine.incr()

	var theirs *counter
	done := make(chan struct{})
	go func() {
		defer close(done)
		theirs = n.Get()
		theirs.incr()
		theirs.incr()
	}()
	<-done

	require.NotSame(t, mine, theirs, "each goroutine must get its own instance")
	assert.Equal(t, 1, mine.total(), "another goroutine's mutations must be invisible here")
	assert.Equal(t, 2, theirs.total())
}

func TestThreadNexus_ManyGoroutines(t *testing.T) {
	const goroutines = 50

	var factoryRuns atomic.Int32
	n := NewThread(WithFactory(func() (*counter, error) {
		factoryRuns.Add(1)
		return &counter{}, nil
	}))

	seen := make(chan *counter, goroutines)
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			instance, err := n.GetSafe()
			if err != nil {
				return err
			}
			if again, err := n.GetSafe(); err != nil || again != instance {
				return errors.New("slot changed between accesses")
			}
			seen <- instance
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(seen)

	distinct := make(map[*counter]bool)
	for instance := range seen {
		distinct[instance] = true
	}
	assert.Len(t, distinct, goroutines, "every goroutine must own a distinct instance")
	assert.Equal(t, int32(goroutines), factoryRuns.Load(), "factory must run once per goroutine")
}

func TestThreadNexus_Release(t *testing.T) {
	var n ThreadNexus[tracked]

	first := n.Get()
	require.NoError(t, n.Release())
	assert.True(t, first.disposed.Load(), "Release must dispose the slot's instance")

	second := n.Get()
	assert.NotSame(t, first, second, "access after Release must construct anew")
}

func TestThreadNexus_ReleaseWithoutAccess(t *testing.T) {
	var n ThreadNexus[counter]
	assert.NoError(t, n.Release(), "Release with no slot must be a no-op")
}

func TestThreadNexus_ReleaseOnlyOwnSlot(t *testing.T) {
	var n ThreadNexus[counter]

	other := make(chan *counter)
	hold := make(chan struct{})
	released := make(chan struct{})
	go func() {
		other <- n.Get()
		<-hold
		close(released)
	}()

	theirs := <-other
	mine := n.Get()
	require.NoError(t, n.Release())
	close(hold)
	<-released

	// The other goroutine's slot must have survived this goroutine's
	// Release.
	assert.NotSame(t, mine, theirs)
	again := n.Get()
	assert.NotSame(t, mine, again, "own slot must be gone after Release")
}

func TestThreadNexus_FactoryErrorRetries(t *testing.T) {
	boom := errors.New("boom")
	var attempts atomic.Int32
	n := NewThread(WithFactory(func() (*counter, error) {
		if attempts.Add(1) == 1 {
			return nil, boom
		}
		return &counter{}, nil
	}))

	_, err := n.GetSafe()
	require.ErrorIs(t, err, boom)

	instance, err := n.GetSafe()
	require.NoError(t, err, "the goroutine's next access must retry construction")
	assert.NotNil(t, instance)
}

func TestParseGID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"running goroutine", "goroutine 123 [running]:\nmain.main()", 123},
		{"single digit", "goroutine 7 [runnable]:", 7},
		{"large id", "goroutine 18446744073 [running]:", 18446744073},
		{"not a header", "panic: oops", 0},
		{"empty", "", 0},
		{"truncated prefix", "goroutin", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseGID([]byte(tt.in)))
		})
	}
}

func TestGoroutineID(t *testing.T) {
	id := goroutineID()
	require.Positive(t, id)
	assert.Equal(t, id, goroutineID(), "a goroutine's ID must be stable")

	var otherID int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		otherID = goroutineID()
	}()
	<-done
	assert.NotEqual(t, id, otherID, "distinct goroutines must have distinct IDs")
}
