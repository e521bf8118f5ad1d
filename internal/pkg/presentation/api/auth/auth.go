package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("catalog-aggregator/api/authz")

// DefaultPolicy grants read access to everyone
const DefaultPolicy string = `
package catalog.authz

default allow := false

allow {
	input.method == "GET"
}
`

type Enticator interface {
	CheckAccess(ctx context.Context, r *http.Request) error
}

type enticatorImpl struct {
	preparedQuery rego.PreparedEvalQuery
}

// NewAuthenticator prepares the rego policies read from policies. The default
// policy is used if policies is nil.
func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {

	var err error
	module := []byte(DefaultPolicy)

	if policies != nil {
		module, err = io.ReadAll(policies)
		if err != nil {
			return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
		}
	}

	impl := &enticatorImpl{}

	impl.preparedQuery, err = rego.New(
		rego.Query("x = data.catalog.authz.allow"),
		rego.Module("catalog.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return impl, nil
}

func (e *enticatorImpl) CheckAccess(ctx context.Context, r *http.Request) error {
	var err error

	_, span := tracer.Start(ctx, "check-auth")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	token := r.Header.Get("Authorization")

	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = token[7:]
	}

	path := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	input := map[string]any{
		"method": r.Method,
		"path":   path,
		"token":  token,
	}

	results, err := e.preparedQuery.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		err = fmt.Errorf("opa eval failed: %w", err)
		return err
	}

	if len(results) == 0 {
		err = fmt.Errorf("auth failed: opa query could not be satisfied")
		return err
	}

	binding := results[0].Bindings["x"]

	// a policy may either answer with a plain bool or with a result object
	switch allowed := binding.(type) {
	case bool:
		if !allowed {
			err = errors.New("authorization failed")
			return err
		}
	case map[string]any:
	default:
		err = errors.New("opa error: unexpected result type")
		return err
	}

	return nil
}
