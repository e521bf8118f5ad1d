package aggregator

import (
	"context"
	"fmt"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/views"
	"github.com/diwise/catalog-aggregator/pkg/catalog/client"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("catalog-aggregator/aggregator")

const TraceAttributeSortBy string = "sort-by"

type aggregatorApp struct {
	upstream UpstreamConfig
	walker   client.PageWalker
	sorting  *FieldSortSpec
}

func WithPageWalker(w client.PageWalker) func(*aggregatorApp) {
	return func(app *aggregatorApp) {
		app.walker = w
	}
}

func New(ctx context.Context, cfg Config, options ...func(*aggregatorApp)) (views.CatalogViews, error) {
	fields, err := ParseSortFields(cfg.Sorting.Fields)
	if err != nil {
		return nil, err
	}

	app := &aggregatorApp{
		upstream: cfg.Upstream,
		sorting:  NewFieldSortSpec(fields...),
	}

	for _, option := range options {
		option(app)
	}

	if app.walker == nil {
		app.walker = client.NewPageWalker(
			client.Timeout(cfg.Upstream.Timeout),
			client.MaxPages(cfg.Upstream.MaxPages),
			client.Debug(cfg.Upstream.Debug),
		)
	}

	logging.GetFromContext(ctx).Info("aggregating catalog",
		"people", app.upstream.PeopleURL(),
		"planets", app.upstream.PlanetsURL(),
	)

	return app, nil
}

func (app *aggregatorApp) ListPeople(ctx context.Context, sortBy string) (types.Collection, error) {
	var err error

	ctx, span := tracer.Start(ctx, "list-people",
		trace.WithAttributes(attribute.String(TraceAttributeSortBy, sortBy)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	people, err := app.walker.FetchAll(ctx, app.upstream.PeopleURL())
	if err != nil {
		err = fmt.Errorf("failed to fetch people: %w", err)
		return nil, err
	}

	if !app.sorting.Sortable(sortBy) {
		if sortBy != "" {
			logging.GetFromContext(ctx).Debug("ignoring unsupported sort field", "sortBy", sortBy)
		}
		return people, nil
	}

	people, err = app.sorting.SortBy(people, sortBy)
	if err != nil {
		return nil, err
	}

	return people, nil
}

func (app *aggregatorApp) ListPlanets(ctx context.Context) (types.Collection, error) {
	var err error

	ctx, span := tracer.Start(ctx, "list-planets")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	people, err := app.walker.FetchAll(ctx, app.upstream.PeopleURL())
	if err != nil {
		err = fmt.Errorf("failed to fetch people: %w", err)
		return nil, err
	}

	residentsByURL := IndexByURL(people)

	planets, err := app.walker.FetchAll(ctx, app.upstream.PlanetsURL())
	if err != nil {
		err = fmt.Errorf("failed to fetch planets: %w", err)
		return nil, err
	}

	planets, err = ResolveResidents(planets, residentsByURL)
	if err != nil {
		return nil, err
	}

	return planets, nil
}
