package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubSchedule captures scheduled dismissals so tests can fire them
// deterministically.
type stubSchedule struct {
	fns []func()
}

func (s *stubSchedule) hook(q *Queue) {
	q.schedule = func(d time.Duration, f func()) { s.fns = append(s.fns, f) }
}

func (s *stubSchedule) fireAll() {
	for _, f := range s.fns {
		f()
	}
	s.fns = nil
}

func TestQueue_ErrorToastIsPersistent(t *testing.T) {
	sched := &stubSchedule{}
	q := NewQueue()
	sched.hook(q)

	q.Error("Session expired. Please log in again.")

	require.Empty(t, sched.fns) // no dismissal ever scheduled
	require.Len(t, q.All().Get(), 1)
	require.False(t, q.All().Get()[0].AutoDismiss)
}

func TestQueue_SuccessAndInfoAutoDismiss(t *testing.T) {
	sched := &stubSchedule{}
	q := NewQueue()
	sched.hook(q)

	q.Success("saved")
	q.Info("heads up")
	require.Len(t, q.All().Get(), 2)
	require.Len(t, sched.fns, 2)

	sched.fireAll()
	require.Empty(t, q.All().Get())
}

func TestQueue_Dismiss(t *testing.T) {
	q := NewQueue()
	id := q.Error("boom")
	q.Error("other")

	q.Dismiss(id)

	all := q.All().Get()
	require.Len(t, all, 1)
	require.Equal(t, "other", all[0].Message)

	q.Dismiss("unknown-id") // no-op
	require.Len(t, q.All().Get(), 1)
}

func TestQueue_VisibleCapsAtThreeMostRecent(t *testing.T) {
	q := NewQueue()
	for i := 1; i <= 5; i++ {
		q.Error(fmt.Sprintf("e%d", i))
	}

	visible := q.Visible()
	require.Len(t, visible, 3)
	require.Equal(t, "e3", visible[0].Message)
	require.Equal(t, "e5", visible[2].Message)
	require.Len(t, q.All().Get(), 5)
}

func TestQueue_SubscribersSeeChanges(t *testing.T) {
	q := NewQueue()
	var counts []int
	q.All().Subscribe(func(all []Toast) { counts = append(counts, len(all)) })

	id := q.Error("a")
	q.Dismiss(id)

	require.Equal(t, []int{1, 0}, counts)
}
