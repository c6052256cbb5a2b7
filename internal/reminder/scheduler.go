package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"habit-streak-bot/internal/model"
	pkgLog "habit-streak-bot/pkg/log"
)

// Dispatcher is called when a trigger fires. It runs on the timer goroutine.
type Dispatcher func(ctx context.Context, key Key)

// Loader returns every active task, the source of truth for Reconcile.
type Loader func(ctx context.Context) ([]model.Task, error)

type stopper interface {
	Stop() bool
}

type job struct {
	trigger Trigger
	name    string
	next    time.Time
	timer   stopper
	gen     uint64
}

// Scheduler owns the in-memory trigger set. It can be rebuilt from task rows
// at any time with Reconcile.
type Scheduler struct {
	l        pkgLog.Logger
	dispatch Dispatcher
	now      func() time.Time
	after    func(d time.Duration, f func()) stopper

	mu     sync.Mutex
	jobs   map[Key]*job
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler returns an idle scheduler. Triggers are armed right away but
// dispatch uses the context handed to Start, or Background before that.
func NewScheduler(l pkgLog.Logger, dispatch Dispatcher) *Scheduler {
	return &Scheduler{
		l:        l,
		dispatch: dispatch,
		now:      time.Now,
		after: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		jobs: make(map[Key]*job),
		ctx:  context.Background(),
	}
}

// Install replaces the trigger of a task. Inactive tasks only lose theirs.
func (s *Scheduler) Install(ctx context.Context, t model.Task) error {
	key := KeyOf(t)
	if !t.IsActive {
		s.Remove(key)
		return nil
	}

	tr, err := TriggerFor(t)
	if err != nil {
		s.Remove(key)
		return err
	}
	next, ok := tr.Next(s.now())
	if !ok {
		s.Remove(key)
		return ErrNoOccurrence
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
	s.armLocked(key, &job{trigger: tr, name: t.Name, next: next})

	s.l.Debugf(ctx, "reminder.Scheduler.Install: user=%d task=%d next=%s", key.UserID, key.TaskID, next.Format(time.RFC3339))
	return nil
}

// Remove cancels the trigger of key. A timer that already fired still
// dispatches once; a later fire of a removed job is dropped.
func (s *Scheduler) Remove(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(key)
}

func (s *Scheduler) removeLocked(key Key) bool {
	j, ok := s.jobs[key]
	if !ok {
		return false
	}
	j.timer.Stop()
	delete(s.jobs, key)
	return true
}

func (s *Scheduler) armLocked(key Key, j *job) {
	s.gen++
	gen := s.gen
	j.gen = gen
	d := j.next.Sub(s.now())
	if d < 0 {
		d = 0
	}
	j.timer = s.after(d, func() { s.fire(key, gen) })
	s.jobs[key] = j
}

func (s *Scheduler) fire(key Key, gen uint64) {
	s.mu.Lock()
	j, ok := s.jobs[key]
	if !ok || j.gen != gen {
		s.mu.Unlock()
		return
	}
	if j.trigger.Recurring() {
		from := j.next
		if now := s.now(); now.After(from) {
			from = now
		}
		if next, ok := j.trigger.Next(from); ok {
			j.next = next
			s.armLocked(key, j)
		} else {
			delete(s.jobs, key)
		}
	} else {
		delete(s.jobs, key)
	}
	ctx := s.ctx
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	s.dispatch(ctx, key)
}

// Reconcile makes the trigger set match tasks. Unchanged triggers keep their
// timers, so a reload never double-fires. One-shot tasks that already fired
// are counted as spent. A task that fails to install is logged and left
// unscheduled.
func (s *Scheduler) Reconcile(ctx context.Context, tasks []model.Task) ReconcileResult {
	var res ReconcileResult
	want := make(map[Key]bool, len(tasks))

	for _, t := range tasks {
		if !t.IsActive {
			continue
		}
		key := KeyOf(t)
		want[key] = true

		if s.unchanged(key, t) {
			res.Kept++
			continue
		}
		if err := s.Install(ctx, t); err != nil {
			if errors.Is(err, ErrNoOccurrence) && !t.IsRecurring {
				res.Spent++
				continue
			}
			s.l.Warnf(ctx, "reminder.Scheduler.Reconcile: user=%d task=%d: %v", key.UserID, key.TaskID, err)
			res.Failed++
			continue
		}
		res.Installed++
	}

	s.mu.Lock()
	for key := range s.jobs {
		if !want[key] {
			s.removeLocked(key)
			res.Removed++
		}
	}
	s.mu.Unlock()

	return res
}

func (s *Scheduler) unchanged(key Key, t model.Task) bool {
	tr, err := TriggerFor(t)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[key]
	if !ok || !j.trigger.Same(tr) {
		return false
	}
	j.name = t.Name
	return true
}

// Start reconciles from load now and then every interval until ctx ends or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context, load Loader, interval time.Duration) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mu.Unlock()

	s.reload(runCtx, load)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				s.reload(runCtx, load)
			}
		}
	}()
}

func (s *Scheduler) reload(ctx context.Context, load Loader) {
	tasks, err := load(ctx)
	if err != nil {
		s.l.Errorf(ctx, "reminder.Scheduler.reload: load tasks: %v", err)
		return
	}
	res := s.Reconcile(ctx, tasks)
	s.l.Infof(ctx, "reminder.Scheduler.reload: installed=%d kept=%d removed=%d spent=%d failed=%d",
		res.Installed, res.Kept, res.Removed, res.Spent, res.Failed)
}

// Stop cancels every timer and the reload loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for key := range s.jobs {
		s.removeLocked(key)
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// NextReminders lists the installed triggers of a user, soonest first.
func (s *Scheduler) NextReminders(userID int64) []Upcoming {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Upcoming
	for key, j := range s.jobs {
		if key.UserID != userID {
			continue
		}
		out = append(out, Upcoming{
			TaskID:   key.TaskID,
			TaskName: j.name,
			NextFire: j.next.In(j.trigger.Location()),
			Timezone: j.trigger.Location().String(),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].NextFire.Before(out[b].NextFire) })
	return out
}

// Len is the number of installed triggers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
