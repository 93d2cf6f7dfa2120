package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"matchwell/internal/model"
)

type fakeGeoCache struct {
	store map[string]*model.GeoResult
}

func (f *fakeGeoCache) Get(ctx context.Context, postcode string) (*model.GeoResult, error) {
	return f.store[postcode], nil
}

func (f *fakeGeoCache) Set(ctx context.Context, postcode string, result *model.GeoResult) error {
	if f.store == nil {
		f.store = map[string]*model.GeoResult{}
	}
	f.store[postcode] = result
	return nil
}

func TestGeoLookupFetchesAndCaches(t *testing.T) {
	hits := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "SW1A1AA", r.URL.Query().Get("postcode"))
		json.NewEncoder(w).Encode(model.GeoResult{Region: "london"})
	}))
	defer upstream.Close()

	geoCache := &fakeGeoCache{}
	svc := NewGeoService(upstream.URL, geoCache, zap.NewNop())

	// Lowercase spaced input normalizes to the canonical postcode.
	result, err := svc.Lookup(context.Background(), "sw1a 1aa")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "london", result.Region)
	assert.Equal(t, "SW1A1AA", result.Postcode)

	result, err = svc.Lookup(context.Background(), "SW1A 1AA")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, hits)
}

func TestGeoLookupUnknownPostcodeIsNotAnError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	svc := NewGeoService(upstream.URL, &fakeGeoCache{}, zap.NewNop())

	result, err := svc.Lookup(context.Background(), "ZZ99 9ZZ")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestGeoLookupDegradesWhenUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := NewGeoService(upstream.URL, &fakeGeoCache{}, zap.NewNop())

	result, err := svc.Lookup(context.Background(), "SW1A 1AA")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestGeoLookupEmptyPostcode(t *testing.T) {
	svc := NewGeoService("", &fakeGeoCache{}, zap.NewNop())

	result, err := svc.Lookup(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, result)
}
