package subscription

import (
	"context"
	"sync"
	"time"

	"fitstudio/internal/logger"
)

// Sweeper periodically runs the expiration sweep in the background.
type Sweeper struct {
	service  Service
	interval time.Duration

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewSweeper(service Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
	}
}

func (sw *Sweeper) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.ticker != nil {
		return
	}

	// A fresh channel each time so the sweeper can be restarted after Stop.
	sw.stop = make(chan struct{})
	sw.ticker = time.NewTicker(sw.interval)
	sw.wg.Add(1)

	go sw.run(sw.ticker, sw.stop)

	logger.Info("Expiration sweeper started", "interval", sw.interval.String())
}

func (sw *Sweeper) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.ticker != nil {
		sw.ticker.Stop()
		close(sw.stop)
		sw.wg.Wait()
		sw.ticker = nil
		logger.Info("Expiration sweeper stopped")
	}
}

func (sw *Sweeper) run(ticker *time.Ticker, stop chan struct{}) {
	defer sw.wg.Done()

	// Run once immediately so a restart catches up on overdue rows.
	sw.sweep()

	for {
		select {
		case <-ticker.C:
			sw.sweep()
		case <-stop:
			return
		}
	}
}

func (sw *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := sw.service.ExpireDue(ctx); err != nil {
		logger.Errorf("Expiration sweep failed: %v", err)
	}
}
