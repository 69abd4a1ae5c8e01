package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/internal/cache"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/log"
	"github.com/peek-cli/peek/network"
	"github.com/spf13/viper"
)

// StatusError reports a non-2xx response from the catalog source.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Fetch downloads the catalog at url and returns its items in feed order.
// A fresh cached copy is returned without touching the network when catalog.cache_ttl allows it.
func Fetch(ctx context.Context, url string) ([]*Item, error) {
	ttl := time.Duration(viper.GetInt(key.CatalogCacheTTL)) * time.Minute
	cacheKey := cache.GenerateKey(url, "catalog")

	if ttl > 0 {
		var cached []*Item
		if cache.Read(cacheKey, ttl, &cached) {
			log.With(log.Fields{"url": url, "items": len(cached)}).Debugf("catalog served from cache")
			return cached, nil
		}
	}

	items, err := download(ctx, url)
	if err != nil {
		return nil, err
	}

	if ttl > 0 {
		if err := cache.Write(cacheKey, items); err != nil {
			log.Warnf("catalog cache write failed: %v", err)
		}
	}

	return items, nil
}

func download(ctx context.Context, url string) ([]*Item, error) {
	if timeout := viper.GetInt(key.CatalogTimeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	log.With(log.Fields{"url": url}).Infof("fetching catalog")

	res, err := network.Current().Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog read: %w", err)
	}

	var items []*Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}

	log.With(log.Fields{"url": url, "items": len(items)}).Infof("catalog fetched")
	return items, nil
}
