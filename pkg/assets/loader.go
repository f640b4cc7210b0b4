package assets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/logger"
)

const (
	DefaultTimeout = 10 * time.Second

	maxAnimationBytes = 8 << 20
	bodyPreviewLength = 200
)

// DefaultURLs are the decorative animations shown on top of each view.
var DefaultURLs = map[domain.Mode]string{
	domain.ModeChat:         "https://lottie.host/efaed900-e918-4778-af6c-359ec067e84e/dqIieJEJzJ.json",
	domain.ModeCloudExplain: "https://lottie.host/798bb927-01a8-4f9a-bc23-8d50b166a170/V3b2YcztwS.json",
	domain.ModeERDExplain:   "https://lottie.host/50d2d893-14c1-405a-84b0-686c359942a1/nhDWk8fppg.json",
	domain.ModeTroubleshoot: "https://lottie.host/7344898f-9d17-4873-b74a-3c14ef8f4dad/LJUpqUrLtf.json",
}

type loader struct {
	hc *http.Client
}

func NewLoader(timeout time.Duration) *loader {
	hc := cleanhttp.DefaultClient()
	hc.Timeout = timeout
	if hc.Timeout <= 0 {
		hc.Timeout = DefaultTimeout
	}

	return &loader{hc: hc}
}

// LoadAnimation fetches a Lottie document. Any failure is logged and reported as nil so the
// caller can show a placeholder instead.
func (l *loader) LoadAnimation(ctx context.Context, url string) *domain.Animation {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.WarnContext(ctx, "Creating animation request", "url", url, logger.Err(err))
		return nil
	}

	resp, err := l.hc.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "Fetching animation", "url", url, logger.Err(err))
		return nil
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			slog.WarnContext(ctx, "Closing animation body", logger.Err(closeErr))
		}
	}(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAnimationBytes))
	if err != nil {
		slog.WarnContext(ctx, "Reading animation body", "url", url, logger.Err(err))
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "Unexpected animation status", "url", url, "status", resp.StatusCode)
		return nil
	}

	if !gjson.ValidBytes(body) {
		slog.WarnContext(ctx, "Failed to parse JSON from URL", "url", url, "body", preview(body))
		return nil
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		slog.WarnContext(ctx, "Animation is not a JSON object", "url", url, "body", preview(body))
		return nil
	}

	return &domain.Animation{
		URL:       url,
		Data:      json.RawMessage(body),
		Version:   doc.Get("v").String(),
		FrameRate: doc.Get("fr").Float(),
		Width:     int(doc.Get("w").Int()),
		Height:    int(doc.Get("h").Int()),
	}
}

// Preload fetches all animations concurrently. Modes whose animation failed are absent from
// the result.
func (l *loader) Preload(ctx context.Context, urls map[domain.Mode]string) map[domain.Mode]*domain.Animation {
	var mu sync.Mutex
	loaded := make(map[domain.Mode]*domain.Animation, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(urls) + 1)
	for mode, url := range urls {
		mode, url := mode, url
		g.Go(func() error {
			animation := l.LoadAnimation(gctx, url)
			if animation == nil {
				return nil
			}

			mu.Lock()
			loaded[mode] = animation
			mu.Unlock()

			slog.InfoContext(gctx, "Animation loaded", "mode", mode.Slug(), "version", animation.Version, "size", len(animation.Data))
			return nil
		})
	}
	_ = g.Wait()

	return loaded
}

func preview(body []byte) string {
	if len(body) > bodyPreviewLength {
		return string(body[:bodyPreviewLength])
	}
	return string(body)
}
