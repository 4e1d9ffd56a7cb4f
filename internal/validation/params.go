package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/scripts/internal/errs"
)

// Params gives named access to request parameters.
type Params interface {
	// Param returns the value for name, nil when absent.
	Param(name string) any
}

// MapParams is a Params backed by a plain map.
type MapParams map[string]any

func (m MapParams) Param(name string) any {
	return m[name]
}

// requestParams looks a name up in the parsed body first and falls back to
// the query string.
type requestParams struct {
	body  map[string]any
	query url.Values
}

func (p requestParams) Param(name string) any {
	if v, ok := p.body[name]; ok && v != nil {
		return v
	}
	if p.query.Has(name) {
		return p.query.Get(name)
	}
	return nil
}

// ParseParams parses the request body (JSON object, url-encoded or multipart
// form) and combines it with the query string.
//
// JSON numbers are kept as json.Number so integers beyond float64
// precision reach the store unchanged.
//
// Errors:
//   - 400 when the body is not a valid JSON object
//   - 415 (echo error) when the content type is not supported
func ParseParams(c echo.Context) (Params, error) {
	req := c.Request()
	body := map[string]any{}

	ctype := req.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		form, err := c.FormParams()
		if err != nil {
			return nil, errs.NewBadRequestError("Malformed request body", false, nil, nil).WithCause(err)
		}
		for k, v := range form {
			if len(v) > 0 {
				body[k] = v[0]
			}
		}

	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		if err := decodeJSON(req.Body, &body); err != nil {
			return nil, errs.NewBadRequestError("Malformed request body", false, nil, nil).WithCause(err)
		}

	default:
		// BindBody is a no-op for empty bodies.
		if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
				return nil, err
			}
			return nil, errs.NewBadRequestError("Malformed request body", false, nil, nil).WithCause(err)
		}
	}

	return requestParams{body: body, query: c.QueryParams()}, nil
}

// decodeJSON reads a single JSON object. An empty body leaves dst untouched.
func decodeJSON(r io.Reader, dst *map[string]any) error {
	if r == nil {
		return nil
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
