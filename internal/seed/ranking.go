package seed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/podium/internal/adapters/http/client"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// fetchRanks looks up every id through GET /rank/{id} with a worker pool.
// Entries that failed are left zero and counted in stats.
func fetchRanks(ctx context.Context, c *client.Client, workers int, ids []string, stats *Stats) []model.RankedStudent {
	out := make([]model.RankedStudent, len(ids))
	var ok, failed int64

	workers = max(1, min(workers, len(ids)))
	jobs := make(chan int, workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entry, err := c.Rank(ctx, ids[i])
				if err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Debug(ctx, "rank lookup failed", logger.String("id", ids[i]), logger.Error(err))
					continue
				}
				out[i] = entry
				atomic.AddInt64(&ok, 1)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()
	wg.Wait()

	stats.RanksChecked = int(atomic.LoadInt64(&ok))
	stats.RanksFailed = int(atomic.LoadInt64(&failed))
	return out
}
