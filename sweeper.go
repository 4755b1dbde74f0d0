package cache

import (
	"time"

	"github.com/RussellLuo/timingwheel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krisalay/routecache/shard"
	"github.com/krisalay/routecache/types"
)

// ErrClosed is returned by StartSweeper once the cache has been closed.
var ErrClosed = errors.New("cache: closed")

/*
The sweeper is an optional extra on top of lazy expiration. Reads still purge
stale entries themselves, so freshness never depends on when the sweep runs;
the sweep only reclaims memory held by keys nobody reads again.
*/
type sweeper struct {
	tw    *timingwheel.TimingWheel
	timer *timingwheel.Timer
}

// every is a timingwheel.Scheduler firing at a fixed interval.
type every time.Duration

func (e every) Next(prev time.Time) time.Time {
	return prev.Add(time.Duration(e))
}

func (s *sweeper) stop() {
	s.timer.Stop()
	s.tw.Stop()
}

/*
StartSweeper runs Sweep every interval on a timing wheel until Close.

interval <= 0 leaves the sweeper off. Calling it again while a sweeper is running
is a no-op.
*/
func (c *ShardedCache) StartSweeper(interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.sweeper != nil {
		return nil
	}

	tick := interval / 16
	if tick < time.Millisecond {
		tick = time.Millisecond
	}
	tw := timingwheel.NewTimingWheel(tick, 64)
	tw.Start()

	timer := tw.ScheduleFunc(every(interval), func() {
		if n := c.Sweep(); n > 0 {
			c.engine.Logger.Debug("sweep removed stale entries", zap.Int("removed", n))
		}
	})

	c.sweeper = &sweeper{tw: tw, timer: timer}
	c.engine.Logger.Info("sweeper started", zap.Duration("interval", interval))
	return nil
}

// Sweep removes every stale entry now and returns how many it removed.
func (c *ShardedCache) Sweep() int {
	removed := 0
	for _, sh := range c.shards {
		removed += c.sweepShard(sh)
	}
	return removed
}

func (c *ShardedCache) sweepShard(sh *shard.Shard) int {
	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	now := c.engine.Now()
	var stale []string
	sh.Store.Range(func(ent *types.CacheEntry) bool {
		if c.engine.IsExpired(ent, now) {
			stale = append(stale, ent.Key)
		}
		return true
	})

	for _, key := range stale {
		ent, _ := sh.Store.Get(key)
		c.removeLocked(sh, key)
		c.engine.OnExpire(ent, now)
	}
	return len(stale)
}
