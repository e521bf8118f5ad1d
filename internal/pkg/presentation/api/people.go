package api

import (
	"net/http"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/views"
	"github.com/diwise/catalog-aggregator/internal/pkg/presentation/api/auth"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type PeopleResponse struct {
	People types.Collection `json:"people"`
}

// NewListPeopleHandler handles GET requests for the, optionally sorted, list of people
func NewListPeopleHandler(
	app views.PeopleLister,
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

		sortBy := r.URL.Query().Get("sortBy")

		people, err := app.ListPeople(ctx, sortBy)
		if err != nil {
			log.Error("failed to list people", "sortBy", sortBy, "err", err.Error())
			ReportInternalError(w)
			return
		}

		err = writeJSON(w, http.StatusOK, PeopleResponse{People: people})
		if err != nil {
			log.Error("failed to write people response", "err", err.Error())
		}
	})
}
