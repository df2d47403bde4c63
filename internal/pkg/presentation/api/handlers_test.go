package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

func TestFieldsOfAMarker(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/fields", strings.NewReader(markerJSON))

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.True(strings.HasPrefix(body, `{"id":12,"map_id":1,"min_zoom":0,"max_zoom":10,"enable":1,"tags":"a_b","type_id":1,`))
	is.True(strings.HasSuffix(body, `"entity_type":"","entity_id":""}`))
}

func TestFieldsWithMalformedDataReturnsBadRequestData(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/fields", strings.NewReader(`{"data":"{"}`))

	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
	is.Equal(resp.Header.Get("Content-Type"), "application/problem+json")
	is.True(strings.Contains(body, "BadRequestData"))
}

func TestFieldsWithInvalidJSONReturnsInvalidRequest(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/fields", strings.NewReader("this is not my json"))

	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
	is.True(strings.Contains(body, "InvalidRequest"))
}

func TestFieldsWithWrongContentTypeReturnsUnsupportedMediaType(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/map-items/fields", strings.NewReader(markerJSON))
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusUnsupportedMediaType) // Check status code
}

func TestForbiddenTokenReturnsUnauthorized(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/map-items/fields", strings.NewReader(markerJSON))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer forbidden")
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusUnauthorized) // Check status code
}

func TestFormOfAMarker(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/form", strings.NewReader(markerJSON))
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	is.NoErr(err)
	is.Equal(mediaType, "multipart/form-data")

	mr := multipart.NewReader(strings.NewReader(body), params["boundary"])
	form, err := mr.ReadForm(1 << 20)
	is.NoErr(err)

	is.Equal(form.Value["id"], []string{"12"})
	is.Equal(form.Value["tags"], []string{"a_b"})
	is.Equal(form.Value["entity_id"], []string{""})
	_, hasPhoto := form.Value["photo"]
	is.True(!hasPhoto) // nil values should be left out
}

func TestCleanPolyline(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodGet, "/api/v1/map-items/clean/polyline", nil)
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	fields := map[string]any{}
	is.NoErr(json.Unmarshal([]byte(body), &fields))
	is.Equal(fields["type_id"], 2.0)
	is.Equal(fields["id"], nil)
}

func TestCleanItemOfUnknownKindReturnsNotFound(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/api/v1/map-items/clean/area", nil)
	is.Equal(resp.StatusCode, http.StatusNotFound) // Check status code
}

func TestFeaturesFilteredByType(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/features?type=polyline", strings.NewReader(itemsJSON))
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code

	fc := struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string         `json:"id"`
			Geometry map[string]any `json:"geometry"`
		} `json:"features"`
	}{}

	is.NoErr(json.Unmarshal([]byte(body), &fc))
	is.Equal(fc.Type, "FeatureCollection")
	is.Equal(len(fc.Features), 1)
	is.Equal(fc.Features[0].ID, "2")
	is.Equal(fc.Features[0].Geometry["type"], "LineString")
}

func TestFeaturesFilteredByUnknownType(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/features?type=7", strings.NewReader(itemsJSON))
	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
}

func TestMetricsAreExposed(t *testing.T) {
	is, ts := setupTest(t)
	defer ts.Close()

	newTestRequest(is, ts, http.MethodPost, "/api/v1/map-items/fields", strings.NewReader(markerJSON))

	resp, body := newTestRequest(is, ts, http.MethodGet, "/metrics", nil)
	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.True(strings.Contains(body, "mapitems_converted_total"))
}

func newTestRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

func setupTest(t *testing.T) (*is.I, *httptest.Server) {
	is := is.New(t)
	r := chi.NewRouter()

	err := RegisterHandlers(context.Background(), r, bytes.NewBufferString(opaModule), mapitems.DefaultRegistry())
	is.NoErr(err)

	return is, httptest.NewServer(r)
}

const opaModule string = `
package example.authz

import rego.v1

default allow := false

allow := {"user": "test"} if {
	input.token != "forbidden"
}
`

const markerJSON string = `{
	"id": 12,
	"enable": true,
	"tags": ["a b"],
	"type": "marker",
	"data": {"latlng": [62.39, 17.30], "icon": {"options": {"iconUrl": "https://example.com/pin.png"}}}
}`

const itemsJSON string = `[
	{"id": 1, "type": "marker", "data": {"latlng": [62.39, 17.30]}},
	{"id": 2, "type": {"id": 2}, "data": {"latlngs": [[62.39, 17.30], [62.40, 17.31]]}}
]`
