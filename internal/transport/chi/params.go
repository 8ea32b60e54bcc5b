package chi

import (
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// pathParam binds a required path segment, unescaping it first.
func pathParam[T any](r *http.Request, name string) (T, error) {
	var v T
	err := runtime.BindStyledParameterWithOptions("simple", name, gochi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return v, fmt.Errorf("bind path parameter %s: %w", name, err)
	}
	return v, nil
}

// queryParam binds an optional form-style query parameter. Absent yields nil.
func queryParam[T any](r *http.Request, name string) (*T, error) {
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, fmt.Errorf("bind query parameter %s: %w", name, err)
	}
	return v, nil
}

// queryDecimal binds an optional decimal query parameter.
func queryDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	raw, err := queryParam[string](r, name)
	if err != nil || raw == nil {
		return nil, err
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("parse query parameter %s: %w", name, err)
	}
	return &d, nil
}

// decimalOr dereferences p, or returns def when the parameter was absent.
func decimalOr(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p == nil {
		return def
	}
	return *p
}
