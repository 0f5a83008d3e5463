package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/chowline/internal/config"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// Nominatim OpenStreetMap Nominatim 客户端
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatim 创建 Nominatim 客户端
func NewNominatim(cfg config.GeocodeConfig) *Nominatim {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = "chowline/1.0"
	}
	return &Nominatim{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

type nominatimAddress struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Postcode    string `json:"postcode"`
	State       string `json:"state"`
}

type nominatimPlace struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error"`
}

// ReverseGeocode 坐标反查地址
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	var raw nominatimPlace
	if err := n.get(ctx, "/reverse", params, &raw); err != nil {
		return nil, err
	}
	if raw.Error != "" {
		return nil, ErrNotFound
	}
	place := raw.toPlace()
	return &place, nil
}

// Search 地址搜索
func (n *Nominatim) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit <= 0 || limit > 10 {
		limit = 5
	}
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("q", strings.TrimSpace(query))
	params.Set("limit", strconv.Itoa(limit))

	var raw []nominatimPlace
	if err := n.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}
	places := make([]Place, 0, len(raw))
	for _, item := range raw {
		places = append(places, item.toPlace())
	}
	return places, nil
}

func (n *Nominatim) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}

func (p nominatimPlace) toPlace() Place {
	city := p.Address.City
	if city == "" {
		city = p.Address.Town
	}
	if city == "" {
		city = p.Address.Village
	}
	line1 := strings.TrimSpace(strings.Join([]string{p.Address.HouseNumber, p.Address.Road}, " "))
	place := Place{
		DisplayName: p.DisplayName,
		Line1:       line1,
		City:        city,
		Postcode:    strings.ToUpper(strings.TrimSpace(p.Address.Postcode)),
		State:       p.Address.State,
	}
	if lat, err := strconv.ParseFloat(p.Lat, 64); err == nil {
		place.Latitude = &lat
	}
	if lng, err := strconv.ParseFloat(p.Lon, 64); err == nil {
		place.Longitude = &lng
	}
	return place
}
