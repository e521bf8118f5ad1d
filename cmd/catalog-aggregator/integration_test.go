package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/aggregator"
	"github.com/go-chi/chi/v5"

	"github.com/matryer/is"
)

func DefaultTestFlags() FlagMap {
	return FlagMap{
		listenAddress: "",  // listen on all ipv4 and ipv6 interfaces
		servicePort:   "0", //

		logFormat: "json",
	}
}

func TestIntegratePlanetsWithResidentsFromSecondPeoplePage(t *testing.T) {
	is := is.New(t)
	ctx := t.Context()

	upstream := newUpstream(map[string]string{
		"/api/people":        peoplePage1,
		"/api/people?page=2": peoplePage2,
		"/api/planets":       planetsPage1,
	})
	defer upstream.Close()

	ts := newTestService(ctx, is, upstream.URL+"/api")
	defer ts.Close()

	response, responseBody := testRequest(is, ts, http.MethodGet, "/planets")

	is.Equal(response.StatusCode, http.StatusOK)
	is.Equal(responseBody, `{"planets":[{"name":"Tatooine","residents":["Luke Skywalker","Owen Lars"],"url":"`+upstream.URL+`/api/planets/1/"}]}`)
}

func TestIntegratePeopleSortedByMass(t *testing.T) {
	is := is.New(t)
	ctx := t.Context()

	upstream := newUpstream(map[string]string{
		"/api/people":        peoplePage1,
		"/api/people?page=2": peoplePage2,
	})
	defer upstream.Close()

	ts := newTestService(ctx, is, upstream.URL+"/api")
	defer ts.Close()

	response, responseBody := testRequest(is, ts, http.MethodGet, "/people?sortBy=MASS")

	is.Equal(response.StatusCode, http.StatusOK)

	luke := strings.Index(responseBody, "Luke Skywalker")
	owen := strings.Index(responseBody, "Owen Lars")
	jabba := strings.Index(responseBody, "Jabba Desilijic Tiure")
	is.True(luke < owen && owen < jabba) // people should be sorted by numeric mass
}

func TestIntegratePeopleFailsWhenSecondPageFails(t *testing.T) {
	is := is.New(t)
	ctx := t.Context()

	upstream := newUpstream(map[string]string{
		"/api/people": peoplePage1,
	})
	defer upstream.Close()

	ts := newTestService(ctx, is, upstream.URL+"/api")
	defer ts.Close()

	response, responseBody := testRequest(is, ts, http.MethodGet, "/people")

	is.Equal(response.StatusCode, http.StatusInternalServerError)
	is.Equal(responseBody, `{"description":"something went wrong, please try again later"}`)
}

func newTestService(ctx context.Context, is *is.I, upstreamURL string) *httptest.Server {
	cfg, err := aggregator.LoadConfiguration(newTestConfig(upstreamURL))
	is.NoErr(err)

	handler, err := initialize(ctx, DefaultTestFlags(), &AppConfig{
		aggregatorConfig: *cfg,
		policies:         newAuthConfig(),
	})
	is.NoErr(err)

	return httptest.NewServer(handler)
}

// newUpstream serves pages keyed by request uri, replacing {{host}} with the server
// address. Any other request fails with a 500.
func newUpstream(pages map[string]string) *httptest.Server {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(strings.ReplaceAll(page, "{{host}}", "http://"+r.Host)))
	})

	return httptest.NewServer(r)
}

func testRequest(is *is.I, ts *httptest.Server, method, path string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, nil)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

func newAuthConfig() io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(opaModule))
}

func newTestConfig(url string) io.Reader {
	return bytes.NewBufferString(fmt.Sprintf(configFileFmt, url))
}

var configFileFmt string = `
upstream:
  baseURL: %s
  timeout: 2s
  maxPages: 10
sorting:
  fields: [name, height, mass]
`

const opaModule string = `
package catalog.authz

default allow := false

allow = response {
    response := {
    }
}
`

const peoplePage1 string = `{
	"count": 3,
	"next": "{{host}}/api/people?page=2",
	"previous": null,
	"results": [
		{"name": "Jabba Desilijic Tiure", "height": "175", "mass": "1,358", "url": "{{host}}/api/people/16/"},
		{"name": "Luke Skywalker", "height": "172", "mass": "77", "url": "{{host}}/api/people/1/"}
	]
}`

const peoplePage2 string = `{
	"count": 3,
	"next": null,
	"previous": "{{host}}/api/people",
	"results": [
		{"name": "Owen Lars", "height": "178", "mass": "120", "url": "{{host}}/api/people/6/"}
	]
}`

const planetsPage1 string = `{
	"count": 1,
	"next": null,
	"previous": null,
	"results": [
		{"name": "Tatooine", "residents": ["{{host}}/api/people/1/", "{{host}}/api/people/6/"], "url": "{{host}}/api/planets/1/"}
	]
}`
