// Package images fetches and caches poster/backdrop images.
//
// Load never fails observably: any problem (empty URL, transport error,
// undecodable payload) resolves to a fixed placeholder image. Successful
// decodes are memoized in an in-process cache keyed by the exact URL string;
// the cache is unbounded with no TTL, which is acceptable for one session's
// worth of posters.
package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Loader fetches, decodes and caches remote images.
type Loader struct {
	client      *http.Client
	placeholder image.Image
	log         *slog.Logger

	mu       sync.Mutex
	cache    map[string]image.Image
	inflight map[string]*fetch
}

// fetch is one in-flight download. Concurrent Load calls for the same URL
// attach to it instead of starting a second transfer, and all of them
// receive the result once done is closed.
type fetch struct {
	cancel context.CancelFunc
	done   chan struct{}
	img    image.Image // set before done is closed
}

// NewLoader creates a Loader. timeout bounds each transfer; zero means 30s.
func NewLoader(timeout time.Duration, log *slog.Logger) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		client:      &http.Client{Timeout: timeout},
		placeholder: newPlaceholder(),
		log:         log,
		cache:       make(map[string]image.Image),
		inflight:    make(map[string]*fetch),
	}
}

// Placeholder returns the fixed substitute image.
func (l *Loader) Placeholder() image.Image { return l.placeholder }

// Load returns the image at url. An empty url yields the placeholder with no
// network access; a cache hit returns without refetching; otherwise the
// caller either starts a download or attaches to the one already in flight.
// ctx bounds only this caller's wait; the shared download itself is bounded
// by the loader timeout and Cancel.
func (l *Loader) Load(ctx context.Context, url string) image.Image {
	if url == "" {
		return l.placeholder
	}

	l.mu.Lock()
	if img, ok := l.cache[url]; ok {
		l.mu.Unlock()
		return img
	}
	if f, ok := l.inflight[url]; ok {
		l.mu.Unlock()
		return l.wait(ctx, f)
	}

	// The download runs on its own context so that a single caller giving up
	// does not abort the transfer for the waiters attached to it.
	fetchCtx, cancel := context.WithCancel(context.Background())
	f := &fetch{cancel: cancel, done: make(chan struct{})}
	l.inflight[url] = f
	l.mu.Unlock()

	go l.download(fetchCtx, url, f)
	return l.wait(ctx, f)
}

// wait blocks until the fetch completes or ctx expires.
func (l *Loader) wait(ctx context.Context, f *fetch) image.Image {
	select {
	case <-f.done:
		return f.img
	case <-ctx.Done():
		return l.placeholder
	}
}

// download performs one transfer and resolves the fetch, substituting the
// placeholder on any failure.
func (l *Loader) download(ctx context.Context, url string, f *fetch) {
	f.img = l.placeholder
	defer func() {
		l.mu.Lock()
		// Cancel may already have dropped this entry.
		if cur, ok := l.inflight[url]; ok && cur == f {
			delete(l.inflight, url)
		}
		l.mu.Unlock()
		close(f.done)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.log.Debug("image request build failed", "url", url, "error", err)
		return
	}
	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Debug("image download failed", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		l.log.Debug("image read failed", "url", url, "error", err)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		l.log.Debug("image decode failed", "url", url, "error", err)
		return
	}
	if ctx.Err() != nil {
		// Cancelled mid-transfer; discard the payload.
		return
	}

	l.mu.Lock()
	l.cache[url] = img
	l.mu.Unlock()
	f.img = img
}

// Cancel aborts the in-flight download for url, if any. Attached waiters
// resolve to the placeholder; a later-arriving payload is discarded.
func (l *Loader) Cancel(url string) {
	l.mu.Lock()
	f, ok := l.inflight[url]
	if ok {
		delete(l.inflight, url)
	}
	l.mu.Unlock()

	if ok {
		f.cancel()
	}
}

// Clear empties the decoded-image cache. In-flight downloads are unaffected.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.cache = make(map[string]image.Image)
	l.mu.Unlock()
}

// newPlaceholder builds the fixed 2:3 gray poster substitute.
func newPlaceholder() image.Image {
	const w, h = 2, 3
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gray := color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, gray)
		}
	}
	return img
}
