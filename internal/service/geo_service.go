package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"matchwell/internal/cache"
	"matchwell/internal/model"
)

// GeoService resolves postcodes to regions through the configured
// upstream, caching results in Redis. Lookup failures degrade to "no
// region" rather than surfacing errors — the directory just skips the
// region filter.
type GeoService struct {
	baseURL    string
	httpClient *http.Client
	geoCache   cache.GeoCache
	log        *zap.Logger
}

// NewGeoService creates a new geo lookup service
func NewGeoService(baseURL string, geoCache cache.GeoCache, log *zap.Logger) *GeoService {
	return &GeoService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		geoCache: geoCache,
		log:      log,
	}
}

// Lookup resolves a postcode. Returns nil with no error when the
// postcode is unknown or the upstream is unavailable.
func (s *GeoService) Lookup(ctx context.Context, postcode string) (*model.GeoResult, error) {
	postcode = strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	if postcode == "" {
		return nil, nil
	}

	cached, err := s.geoCache.Get(ctx, postcode)
	if err != nil {
		s.log.Warn("geo cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	result, err := s.fetch(ctx, postcode)
	if err != nil {
		s.log.Warn("geo lookup failed", zap.String("postcode", postcode), zap.Error(err))
		return nil, nil
	}
	if result == nil {
		return nil, nil
	}

	if err := s.geoCache.Set(ctx, postcode, result); err != nil {
		s.log.Warn("geo cache write failed", zap.Error(err))
	}
	return result, nil
}

func (s *GeoService) fetch(ctx context.Context, postcode string) (*model.GeoResult, error) {
	if s.baseURL == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/lookup?postcode=%s", s.baseURL, url.QueryEscape(postcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geo upstream returned %d: %s", resp.StatusCode, string(body))
	}

	var result model.GeoResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geo response: %w", err)
	}
	result.Postcode = postcode
	return &result, nil
}
