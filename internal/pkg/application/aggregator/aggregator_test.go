package aggregator

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/views"
	"github.com/diwise/catalog-aggregator/pkg/catalog/client"
	catalogerrors "github.com/diwise/catalog-aggregator/pkg/catalog/errors"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
	"github.com/matryer/is"
)

func TestListPeopleSortsBySupportedField(t *testing.T) {
	is, app, walker := setupAggregatorTest(t)

	people, err := app.ListPeople(context.Background(), "Height")

	is.NoErr(err)
	is.Equal(names(people), "R2-D2,Beru,C-3PO,Luke,Jabba")
	is.Equal(len(walker.FetchAllCalls()), 1)
	is.Equal(walker.FetchAllCalls()[0].StartURL, "http://swapi.test/api/people")
}

func TestListPeopleKeepsFetchOrderForUnsupportedField(t *testing.T) {
	is, app, _ := setupAggregatorTest(t)

	for _, sortBy := range []string{"", "color", "url"} {
		people, err := app.ListPeople(context.Background(), sortBy)

		is.NoErr(err)
		is.Equal(names(people), names(testPeople()))
	}
}

func TestListPeopleFailsWhenUpstreamFails(t *testing.T) {
	is, app, walker := setupAggregatorTest(t)

	walker.FetchAllFunc = func(ctx context.Context, startURL string) (types.Collection, error) {
		return nil, catalogerrors.NewUpstreamError("bad gateway")
	}

	people, err := app.ListPeople(context.Background(), "name")

	is.True(errors.Is(err, catalogerrors.ErrUpstream))
	is.Equal(people, nil)
}

func TestListPlanetsResolvesResidents(t *testing.T) {
	is, app, walker := setupAggregatorTest(t)

	planets, err := app.ListPlanets(context.Background())

	is.NoErr(err)
	is.Equal(len(planets), 2)
	is.Equal(planets[0]["residents"], []string{"Luke", "Beru"})
	is.Equal(planets[1]["residents"], []string{})

	calls := walker.FetchAllCalls()
	is.Equal(len(calls), 2)
	is.Equal(calls[0].StartURL, "http://swapi.test/api/people") // people must be fetched before planets
	is.Equal(calls[1].StartURL, "http://swapi.test/api/planets")
}

func TestListPlanetsFailsOnUnknownResident(t *testing.T) {
	is, app, walker := setupAggregatorTest(t)

	walker.FetchAllFunc = func(ctx context.Context, startURL string) (types.Collection, error) {
		if startURL == "http://swapi.test/api/planets" {
			return types.Collection{{"url": "p9", "residents": []any{"https://swapi.dev/api/people/99/"}}}, nil
		}
		return testPeople(), nil
	}

	planets, err := app.ListPlanets(context.Background())

	is.True(errors.Is(err, catalogerrors.ErrResolution))
	is.Equal(planets, nil)
}

func TestListPlanetsDoesNotFetchPlanetsWhenPeopleFail(t *testing.T) {
	is, app, walker := setupAggregatorTest(t)

	walker.FetchAllFunc = func(ctx context.Context, startURL string) (types.Collection, error) {
		return nil, catalogerrors.NewUpstreamError("timeout")
	}

	_, err := app.ListPlanets(context.Background())

	is.True(errors.Is(err, catalogerrors.ErrUpstream))
	is.Equal(len(walker.FetchAllCalls()), 1)
}

func setupAggregatorTest(t *testing.T) (*is.I, views.CatalogViews, *client.PageWalkerMock) {
	is := is.New(t)

	walker := &client.PageWalkerMock{
		FetchAllFunc: func(ctx context.Context, startURL string) (types.Collection, error) {
			if startURL == "http://swapi.test/api/planets" {
				return types.Collection{
					{"url": "p1", "name": "Tatooine", "residents": []any{
						"https://swapi.dev/api/people/1/",
						"https://swapi.dev/api/people/7/",
					}},
					{"url": "p2", "name": "Alderaan", "residents": []any{}},
				}, nil
			}
			return testPeople(), nil
		},
	}

	cfg := DefaultConfig()
	cfg.Upstream.BaseURL = "http://swapi.test/api"

	app, err := New(context.Background(), cfg, WithPageWalker(walker))
	is.NoErr(err)

	return is, app, walker
}
