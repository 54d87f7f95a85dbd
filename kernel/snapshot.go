package kernel

import (
	"sort"
	"sync"
)

// Introspection for tooling (cmd/qtop). The kernel tracks every live queue
// and registered task; Stats copies their counters out under the objects' own
// locks.

var (
	queuesMu sync.Mutex
	queues   = make(map[*Queue]struct{})
)

func registerQueue(q *Queue) {
	queuesMu.Lock()
	queues[q] = struct{}{}
	queuesMu.Unlock()
}

func unregisterQueue(q *Queue) {
	queuesMu.Lock()
	delete(queues, q)
	queuesMu.Unlock()
}

// QueueStat is a point-in-time view of one queue.
type QueueStat struct {
	Name        string
	Capacity    int
	ElemSize    int
	Waiting     int
	SendWaiters int
	RecvWaiters int
}

// NotifyStat is a point-in-time view of one notification word.
type NotifyStat struct {
	Value   uint32
	Pending bool
}

// TaskStat is a point-in-time view of one task.
type TaskStat struct {
	Name     string
	Priority int
	Words    [NotifyIndexes]NotifyStat
}

// Snapshot is a consistent-enough copy of kernel state for display purposes.
// Individual objects are sampled under their own locks; the set as a whole is
// not atomic.
type Snapshot struct {
	Ticks  Ticks
	Queues []QueueStat
	Tasks  []TaskStat
}

// Stats samples all live queues and tasks.
func Stats() Snapshot {
	s := Snapshot{Ticks: Now()}

	queuesMu.Lock()
	qs := make([]*Queue, 0, len(queues))
	for q := range queues {
		qs = append(qs, q)
	}
	queuesMu.Unlock()

	for _, q := range qs {
		q.mu.Lock()
		if !q.destroyed {
			s.Queues = append(s.Queues, QueueStat{
				Name:        q.name,
				Capacity:    q.capacity,
				ElemSize:    q.elemSize,
				Waiting:     q.count,
				SendWaiters: q.sendq.len(),
				RecvWaiters: q.recvq.len(),
			})
		}
		q.mu.Unlock()
	}

	tasksMu.Lock()
	ts := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		ts = append(ts, t)
	}
	tasksMu.Unlock()

	for _, t := range ts {
		st := TaskStat{Name: t.name, Priority: t.Priority()}
		t.mu.Lock()
		for i := range t.words {
			st.Words[i] = NotifyStat{Value: t.words[i].value, Pending: t.words[i].pending}
		}
		t.mu.Unlock()
		s.Tasks = append(s.Tasks, st)
	}

	sort.Slice(s.Queues, func(i, j int) bool { return s.Queues[i].Name < s.Queues[j].Name })
	sort.Slice(s.Tasks, func(i, j int) bool { return s.Tasks[i].Name < s.Tasks[j].Name })
	return s
}
