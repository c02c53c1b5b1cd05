package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"careercopilot/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueReport(reportID uuid.UUID)
}

type worker struct {
	reportRepo   repositories.ReportRepository
	analyzer     AnalyzerService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	reportRepo repositories.ReportRepository,
	analyzer AnalyzerService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		reportRepo:   reportRepo,
		analyzer:     analyzer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Requeue reports that were left queued by a previous run
	w.wg.Add(1)
	go w.pollPendingReports(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueReport implements Worker.
func (w *worker) EnqueueReport(reportID uuid.UUID) {
	select {
	case w.jobQueue <- reportID:
		log.Printf("📥 Report %s enqueued\n", reportID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue report %s\n", reportID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case reportID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing report %s\n", workerID, reportID)
			if err := w.analyzer.ProcessReport(ctx, reportID); err != nil {
				log.Printf("❌ Worker #%d failed to process report %s: %v\n", workerID, reportID, err)
			} else {
				log.Printf("✅ Worker #%d completed report %s\n", workerID, reportID)
			}
		}
	}
}

func (w *worker) pollPendingReports(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.reportRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending reports: %v\n", err)
				continue
			}

			for _, report := range pending {
				w.EnqueueReport(report.ID)
			}
		}
	}
}
