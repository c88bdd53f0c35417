// internal/game/scheduler.go
package game

import (
	"sort"
	"sync"
	"time"
)

// Timer は予約済みの遷移です。Stop は未実行のときだけ true を返します。
type Timer interface {
	Stop() bool
}

// Scheduler は「D 後に遷移 T を実行する」ための抽象です。
// リセットなどで世代が変わった後に古いコールバックが状態を書き換えないよう、
// 呼び出し側は世代番号と組み合わせて使います。
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
	Now() time.Time
}

type realScheduler struct{}

// NewScheduler は time.AfterFunc を使う実時間のスケジューラを返します
func NewScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realScheduler) Now() time.Time {
	return time.Now()
}

// ManualScheduler は Advance で時間を進めるまで何も実行しないスケジューラです (テスト・TUI用)
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now.Add(d), seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending は未実行かつ未停止のタイマー数
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance は時刻を d 進め、期限の来たタイマーを予約順に実行します。
// コールバックはロックの外で呼ぶので、中から Schedule しても構いません。
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.fired = true
		if next.at.After(s.now) {
			s.now = next.at
		}
		s.mu.Unlock()
		next.fn()
	}
}

func (s *ManualScheduler) nextDueLocked(target time.Time) *manualTimer {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.pending = live
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at.Equal(s.pending[j].at) {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].at.Before(s.pending[j].at)
	})
	if len(s.pending) == 0 || s.pending[0].at.After(target) {
		return nil
	}
	return s.pending[0]
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
