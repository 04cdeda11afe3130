package engine

import (
	"sync"
	"time"
)

// Repeater - самоперевзводящийся таймер.
//
// В отличие от time.Ticker, следующий запуск планируется только ПОСЛЕ того,
// как fn отработала, и с периодом, который next() вернет в этот момент.
// Реальный период = интервал + время работы fn.
type Repeater struct {
	mu      sync.Mutex
	next    func() time.Duration
	fn      func()
	timer   *time.Timer
	started bool
	stopped bool
	running sync.WaitGroup
}

// NewRepeater создает таймер. Запуск - через Start.
func NewRepeater(next func() time.Duration, fn func()) *Repeater {
	return &Repeater{next: next, fn: fn}
}

// Start взводит первый запуск. Повторный вызов ничего не делает.
func (r *Repeater) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.stopped {
		return
	}
	r.started = true
	r.timer = time.AfterFunc(r.next(), r.fire)
}

func (r *Repeater) fire() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.running.Add(1)
	r.mu.Unlock()

	defer r.running.Done()
	r.fn()

	r.mu.Lock()
	if !r.stopped {
		r.timer = time.AfterFunc(r.next(), r.fire)
	}
	r.mu.Unlock()
}

// Stop отменяет следующий запуск и дожидается текущего, если он идет.
// После возврата fn больше не вызывается. Нельзя вызывать из самой fn.
func (r *Repeater) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()

	r.running.Wait()
}
