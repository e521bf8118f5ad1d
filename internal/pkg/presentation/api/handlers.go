package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/views"
	"github.com/diwise/catalog-aggregator/internal/pkg/presentation/api/auth"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	RequestIDHeader string = "X-Request-ID"

	TraceAttributeRequestID string = "request-id"
	TraceAttributeError     string = "error"
)

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app views.CatalogViews) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	r.Get("/health", NewHealthHandler())

	r.Group(func(r chi.Router) {
		r.Use(
			Logger(logging.GetFromContext(ctx)),
			RequestID(),
		)

		r.Get("/people", NewListPeopleHandler(app, authenticator))
		r.Get("/planets", NewListPlanetsHandler(app, authenticator))
	})

	return nil
}

// Logger stores a request scoped logger, decorated with the trace id, in the request context
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID echoes, or generates, a request id and adds it to the request logger
func RequestID() func(http.Handler) http.Handler {
	requestIDHeaderName := http.CanonicalHeaderKey(RequestIDHeader)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeaderName)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			if labeler, found := otelhttp.LabelerFromContext(r.Context()); found {
				labeler.Add(attribute.String(TraceAttributeRequestID, requestID))
			}

			ctx := logging.NewContextWithLogger(
				r.Context(),
				logging.GetFromContext(r.Context()),
				"request_id",
				requestID,
			)

			w.Header().Set(requestIDHeaderName, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewHealthHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func addLabelIfError(err error, labeler *otelhttp.Labeler) {
	if err != nil && labeler != nil {
		labeler.Add(attribute.Bool(TraceAttributeError, true))
	}
}
