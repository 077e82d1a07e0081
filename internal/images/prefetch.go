package images

import (
	"context"
	"sync"
)

// Prefetch warms the cache for a batch of URLs by fanning the loads out
// across at most workers goroutines. Empty URLs and cache hits cost nothing;
// failures land as placeholders and are not retried. It returns once every
// URL has been attempted or ctx expires.
func (l *Loader) Prefetch(ctx context.Context, urls []string, workers int) {
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan string, len(urls))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				if ctx.Err() != nil {
					continue
				}
				l.Load(ctx, url)
			}
		}()
	}

	for _, url := range urls {
		jobs <- url
	}
	close(jobs)
	wg.Wait()
}
