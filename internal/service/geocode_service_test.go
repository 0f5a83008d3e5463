package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chowline/internal/geocode"
)

type stubGeocodeProvider struct {
	place *geocode.Place
	err   error
	calls int
}

func (p *stubGeocodeProvider) ReverseGeocode(context.Context, float64, float64) (*geocode.Place, error) {
	p.calls++
	return p.place, p.err
}

func (p *stubGeocodeProvider) Search(_ context.Context, query string, _ int) ([]geocode.Place, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return []geocode.Place{{DisplayName: query}}, nil
}

func TestReverseGeocodeValidatesCoordinates(t *testing.T) {
	provider := &stubGeocodeProvider{place: &geocode.Place{Postcode: "M1 1AE"}}
	svc := NewGeocodeService(provider)
	if _, err := svc.ReverseGeocode(context.Background(), 91, 0); !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider must not be called for invalid coordinates")
	}
	place, err := svc.ReverseGeocode(context.Background(), 53.4808, -2.2426)
	if err != nil || place.Postcode != "M1 1AE" {
		t.Fatalf("reverse geocode failed: %v place=%+v", err, place)
	}
}

func TestGeocodeErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{err: fmt.Errorf("wait: %w", geocode.ErrBusy), want: ErrGeocoderBusy},
		{err: geocode.ErrNotFound, want: ErrPlaceNotFound},
		{err: geocode.ErrUnavailable, want: ErrGeocoderUnavailable},
		{err: errors.New("dial tcp: refused"), want: ErrGeocoderUnavailable},
	}
	for _, tc := range cases {
		svc := NewGeocodeService(&stubGeocodeProvider{err: tc.err})
		if _, err := svc.ReverseGeocode(context.Background(), 0, 0); !errors.Is(err, tc.want) {
			t.Fatalf("reverse: %v want %v got %v", tc.err, tc.want, err)
		}
		if _, err := svc.SearchAddress(context.Background(), "piccadilly", 5); !errors.Is(err, tc.want) {
			t.Fatalf("search: %v want %v got %v", tc.err, tc.want, err)
		}
	}
}

func TestSearchAddressEmptyQuery(t *testing.T) {
	provider := &stubGeocodeProvider{}
	places, err := NewGeocodeService(provider).SearchAddress(context.Background(), "  ", 5)
	if err != nil || len(places) != 0 || provider.calls != 0 {
		t.Fatalf("empty query should short-circuit, places=%v err=%v calls=%d", places, err, provider.calls)
	}
}
