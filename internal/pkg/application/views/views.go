package views

import (
	"context"

	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
)

//go:generate moq -rm -out views_mock.go . CatalogViews

type PeopleLister interface {
	// ListPeople returns every person in the upstream catalog, sorted by sortBy
	// when it names a sortable field and in fetch order otherwise.
	ListPeople(ctx context.Context, sortBy string) (types.Collection, error)
}

type PlanetsLister interface {
	// ListPlanets returns every planet with its residents resolved into names.
	ListPlanets(ctx context.Context) (types.Collection, error)
}

type CatalogViews interface {
	PeopleLister
	PlanetsLister
}
