package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	raw      *RawForecast
	err      error
	calls    int
	lat, lon float64
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchForecast(_ context.Context, lat, lon float64) (*RawForecast, error) {
	f.calls++
	f.lat, f.lon = lat, lon
	return f.raw, f.err
}

func TestFetchAndNormalize(t *testing.T) {
	var raw RawForecast
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &raw))
	src := &fakeSource{raw: &raw}
	svc := NewService(src, NewNormalizer(MustFormatters("en-US")))

	fc, err := svc.FetchAndNormalize(context.Background(), newYork)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, newYork.Latitude, src.lat)
	assert.Equal(t, newYork.Longitude, src.lon)
	assert.Len(t, fc.Daily, 3)
	assert.Len(t, fc.Hourly, 2)
}

func TestFetchAndNormalizeErrors(t *testing.T) {
	svc := NewService(&fakeSource{err: fmt.Errorf("%w: status 500", ErrRequestFailed)}, NewNormalizer(MustFormatters("en-US")))
	_, err := svc.FetchAndNormalize(context.Background(), newYork)
	assert.ErrorIs(t, err, ErrRequestFailed)

	svc = NewService(&fakeSource{raw: &RawForecast{Current: &RawCurrent{}, Daily: &RawDaily{}}}, NewNormalizer(MustFormatters("en-US")))
	_, err = svc.FetchAndNormalize(context.Background(), newYork)
	assert.ErrorIs(t, err, ErrIncompleteData)
}

func TestFetchAndNormalizeRejectsInvalidLocation(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, NewNormalizer(MustFormatters("en-US")))

	_, err := svc.FetchAndNormalize(context.Background(), PlaceLocation{Name: "Nowhere", Latitude: 95})
	assert.Error(t, err)
	assert.Zero(t, src.calls)
}
