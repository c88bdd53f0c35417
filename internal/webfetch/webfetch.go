// internal/webfetch/webfetch.go
package webfetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"go_vocab_game/internal/model"
)

// Article はページから抽出した本文
type Article struct {
	URL         string
	Title       string
	HTML        string
	TextContent string
}

// Fetcher はURLから本文を取得します
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Article, error)
}

type readabilityFetcher struct {
	client  *http.Client
	maxBody int64
}

// NewReadabilityFetcher は timeout と本文サイズ上限付きの Fetcher を返します
func NewReadabilityFetcher(timeout time.Duration, maxBody int64) Fetcher {
	return &readabilityFetcher{
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBody,
	}
}

func (f *readabilityFetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("webfetch: %w: url %q", model.ErrInvalidInput, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("webfetch: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; go_vocab_game)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webfetch: %w: %v", model.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webfetch: %w: status %d", model.ErrFetchFailed, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBody {
		return nil, fmt.Errorf("webfetch: %w: content-length %d exceeds %d", model.ErrFetchFailed, resp.ContentLength, f.maxBody)
	}

	// 上限+1バイト読めたら超過
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("webfetch: %w: %v", model.ErrFetchFailed, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("webfetch: %w: body exceeds %d bytes", model.ErrFetchFailed, f.maxBody)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return nil, fmt.Errorf("webfetch: %w: extract article: %v", model.ErrFetchFailed, err)
	}
	return &Article{
		URL:         parsed.String(),
		Title:       strings.TrimSpace(article.Title),
		HTML:        article.Content,
		TextContent: article.TextContent,
	}, nil
}
