package api

import (
	"net/http"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/views"
	"github.com/diwise/catalog-aggregator/internal/pkg/presentation/api/auth"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type PlanetsResponse struct {
	Planets types.Collection `json:"planets"`
}

// NewListPlanetsHandler handles GET requests for planets with resident names
func NewListPlanetsHandler(
	app views.PlanetsLister,
	authenticator auth.Enticator) http.HandlerFunc {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()

		labeler, _ := otelhttp.LabelerFromContext(ctx)
		defer func() { addLabelIfError(err, labeler) }()

		log := logging.GetFromContext(ctx)

		err = authenticator.CheckAccess(ctx, r)
		if err != nil {
			log.Warn("access not granted", "err", err.Error())
			ReportUnauthorized(w)
			return
		}

		planets, err := app.ListPlanets(ctx)
		if err != nil {
			log.Error("failed to list planets", "err", err.Error())
			ReportInternalError(w)
			return
		}

		err = writeJSON(w, http.StatusOK, PlanetsResponse{Planets: planets})
		if err != nil {
			log.Error("failed to write planets response", "err", err.Error())
		}
	})
}
