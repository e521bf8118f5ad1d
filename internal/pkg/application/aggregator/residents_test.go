package aggregator

import (
	"errors"
	"testing"

	catalogerrors "github.com/diwise/catalog-aggregator/pkg/catalog/errors"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
	"github.com/matryer/is"
)

func TestResolveResidentsReplacesURLsWithNames(t *testing.T) {
	is := is.New(t)

	people := types.Collection{{"url": "u1", "name": "Luke"}}
	planets := types.Collection{{"url": "p1", "name": "Tatooine", "residents": []any{"u1"}}}

	joined, err := ResolveResidents(planets, IndexByURL(people))

	is.NoErr(err)
	is.Equal(len(joined), 1)
	is.Equal(joined[0]["residents"], []string{"Luke"})
	is.Equal(joined[0].Name(), "Tatooine")
}

func TestResolveResidentsPreservesResidentOrder(t *testing.T) {
	is := is.New(t)

	idx := IndexByURL(testPeople())
	planets := types.Collection{
		{"url": "p1", "residents": []any{
			"https://swapi.dev/api/people/7/",
			"https://swapi.dev/api/people/1/",
			"https://swapi.dev/api/people/7/",
		}},
		{"url": "p2", "residents": []string{"https://swapi.dev/api/people/16/"}},
	}

	joined, err := ResolveResidents(planets, idx)

	is.NoErr(err)
	is.Equal(joined[0]["residents"], []string{"Beru", "Luke", "Beru"})
	is.Equal(joined[1]["residents"], []string{"Jabba"})
}

func TestResolveResidentsDoesNotModifySourcePlanets(t *testing.T) {
	is := is.New(t)

	people := types.Collection{{"url": "u1", "name": "Luke"}}
	planets := types.Collection{{"url": "p1", "residents": []any{"u1"}}}

	_, err := ResolveResidents(planets, IndexByURL(people))

	is.NoErr(err)
	is.Equal(planets[0]["residents"], []any{"u1"})
}

func TestResolveResidentsWithoutResidents(t *testing.T) {
	is := is.New(t)

	planets := types.Collection{
		{"url": "p1", "residents": []any{}},
		{"url": "p2", "residents": nil},
		{"url": "p3"},
	}

	joined, err := ResolveResidents(planets, IndexByURL(nil))

	is.NoErr(err)
	for _, p := range joined {
		is.Equal(p["residents"], []string{})
	}
}

func TestResolveResidentsFailsOnUnknownResident(t *testing.T) {
	is := is.New(t)

	idx := IndexByURL(types.Collection{{"url": "u1", "name": "Luke"}})
	planets := types.Collection{{"url": "p1", "residents": []any{"u1", "u2"}}}

	for range 3 {
		joined, err := ResolveResidents(planets, idx)

		is.True(errors.Is(err, catalogerrors.ErrResolution)) // missing resident should always fail
		is.Equal(joined, nil)
	}
}

func TestResolveResidentsFailsOnMalformedResidents(t *testing.T) {
	is := is.New(t)

	idx := IndexByURL(types.Collection{{"url": "u1", "name": "Luke"}})

	for _, residents := range []any{"u1", []any{42}, map[string]any{"u1": true}} {
		_, err := ResolveResidents(types.Collection{{"url": "p1", "residents": residents}}, idx)
		is.True(errors.Is(err, catalogerrors.ErrResolution))
	}
}

func TestIndexByURL(t *testing.T) {
	is := is.New(t)

	idx := IndexByURL(testPeople())

	is.Equal(len(idx), 5)
	is.Equal(idx["https://swapi.dev/api/people/3/"].Name(), "R2-D2")
}
