package webfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/model"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Fruit Vocabulary</title></head>
<body>
<nav>menu</nav>
<article>
<h1>Fruit Vocabulary</h1>
<p>Today we learn some fruit words for the classroom. Read each line carefully and repeat it aloud with your partner.</p>
<p>apple - 苹果</p>
<p>banana - 香蕉</p>
<p>orange - 橙子</p>
<p>Practice these words every day so that you remember them well before the next lesson begins.</p>
</article>
</body></html>`

func TestReadabilityFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(articleHTML))
		case "/big":
			w.Write([]byte(strings.Repeat("a", 2048)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewReadabilityFetcher(5*time.Second, 1024*1024)

	t.Run("正常系: 本文を抽出", func(t *testing.T) {
		a, err := f.Fetch(context.Background(), srv.URL+"/ok")
		require.NoError(t, err)
		assert.Contains(t, a.TextContent, "苹果")
		assert.NotEmpty(t, a.HTML)
	})

	small := NewReadabilityFetcher(5*time.Second, 1024)
	tests := []struct {
		name    string
		fetcher Fetcher
		url     string
		wantErr error
	}{
		{name: "異常系: 404", fetcher: f, url: srv.URL + "/missing", wantErr: model.ErrFetchFailed},
		{name: "異常系: サイズ超過", fetcher: small, url: srv.URL + "/big", wantErr: model.ErrFetchFailed},
		{name: "異常系: http以外のスキーム", fetcher: f, url: "ftp://example.com/a", wantErr: model.ErrInvalidInput},
		{name: "異常系: 不正なURL", fetcher: f, url: "::nope", wantErr: model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fetcher.Fetch(context.Background(), tt.url)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
