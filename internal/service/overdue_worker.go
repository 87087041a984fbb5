package service

import (
	"context"
	"log"
	"sync"
	"time"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// OverdueWorkerConfig holds settings for the overdue facture sweep.
type OverdueWorkerConfig struct {
	Interval    time.Duration
	Concurrency int
}

// OverdueWorker periodically moves sent invoices past their due date to en_retard.
type OverdueWorker struct {
	factureRepo    port.FactureRepository
	factureService FactureService
	cfg            OverdueWorkerConfig
	now            func() time.Time
	wg             sync.WaitGroup
}

// NewOverdueWorker creates a new OverdueWorker.
func NewOverdueWorker(factureRepo port.FactureRepository, factureService FactureService, cfg OverdueWorkerConfig) *OverdueWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &OverdueWorker{
		factureRepo:    factureRepo,
		factureService: factureService,
		cfg:            cfg,
		now:            time.Now,
	}
}

// Start runs the sweep loop until ctx is canceled. It blocks until all
// in-flight updates have finished.
func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("overdueWorker: started (interval=%s, concurrency=%d)", w.cfg.Interval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("overdueWorker: shutting down, waiting for in-flight updates...")
			w.wg.Wait()
			log.Printf("overdueWorker: shutdown complete")
			return
		case <-ticker.C:
			w.Sweep(ctx, sem)
		}
	}
}

// Sweep runs one pass over every overdue facture. Each one is handled on its own
// goroutine; sem bounds how many run at once.
func (w *OverdueWorker) Sweep(ctx context.Context, sem chan struct{}) int {
	factures, err := w.factureRepo.ListOverdue(ctx, domain.DateOf(w.now()), 0)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("overdueWorker: ListOverdue error: %v", err)
		}
		return 0
	}

	dispatched := 0
	for i := range factures {
		f := factures[i]

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return dispatched
		}
		dispatched++
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer func() { <-sem }()

			// Detached from the sweep context so an update finishes during shutdown.
			taskCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := w.factureService.MarkOverdue(taskCtx, &f); err != nil {
				log.Printf("overdueWorker: facture %s: %v", f.Numero, err)
			}
		}()
	}
	return dispatched
}

// Wait blocks until every dispatched update has returned.
func (w *OverdueWorker) Wait() {
	w.wg.Wait()
}
