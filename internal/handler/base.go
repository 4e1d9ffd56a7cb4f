package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/scripts/internal/middleware"
	"github.com/deppfellow/scripts/internal/model"
	"github.com/deppfellow/scripts/internal/server"
	"github.com/deppfellow/scripts/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config, logger, database and redis
// through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Endpoint plumbing ------------------------------------------------------

// HandlerFunc is an endpoint returning the value sent as the envelope's data.
type HandlerFunc[Res any] func(c echo.Context) (Res, error)

// ParamsHandlerFunc is an endpoint that reads request parameters.
type ParamsHandlerFunc[Res any] func(c echo.Context, params validation.Params) (Res, error)

// HandlerFuncNoData is an endpoint whose success envelope carries no data.
type HandlerFuncNoData func(c echo.Context) error

// envelopeResponse writes a success envelope with a fixed status.
type envelopeResponse struct {
	status   int
	withData bool
}

func (r envelopeResponse) Handle(c echo.Context, result any) error {
	if !r.withData {
		return c.JSON(r.status, model.Envelope{Status: true})
	}
	return c.JSON(r.status, model.Success(result))
}

func (r envelopeResponse) operation() string {
	if r.withData {
		return "handler"
	}
	return "handler_no_data"
}

// addAttributes records the size of list results on the transaction.
func (r envelopeResponse) addAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil || result == nil {
		return
	}
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.count", v.Len())
	}
}

// handleRequest is the shared execution pipeline of every endpoint:
// optional parameter parsing, the endpoint itself, structured logging,
// New Relic attributes, timings and the success envelope. Errors are
// returned untouched for the global error handler to render.
func handleRequest(
	c echo.Context,
	parse bool,
	handler func(c echo.Context, params validation.Params) (any, error),
	response envelopeResponse,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", response.operation()).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	var params validation.Params
	var parseDuration time.Duration
	if parse {
		parseStart := time.Now()
		p, err := validation.ParseParams(c)
		parseDuration = time.Since(parseStart)

		if err != nil {
			logger.Warn().
				Err(err).
				Dur("parse_duration", parseDuration).
				Msg("request parsing failed")
			notice(txn, err, "parse", parseDuration)
			return err
		}
		params = p
	}

	handlerStart := time.Now()
	result, err := handler(c, params)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logFailure(logger, err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		notice(txn, err, "handler", handlerDuration)
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		response.addAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("parse_duration", parseDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return response.Handle(c, result)
}

// logFailure logs client errors at warn and server errors at error level.
func logFailure(logger zerolog.Logger, err error) *zerolog.Event {
	if middleware.StatusOf(err) >= 500 {
		return logger.Error().Err(err)
	}
	return logger.Warn().Err(err)
}

func notice(txn *newrelic.Transaction, err error, phase string, d time.Duration) {
	if txn == nil {
		return
	}
	txn.NoticeError(nrpkgerrors.Wrap(err))
	txn.AddAttribute(phase+".status", "error")
	txn.AddAttribute(phase+".duration_ms", d.Milliseconds())
}

// Handle wraps an endpoint whose result becomes the envelope's data.
//
//	router.GET("/scripts/", handler.Handle(h, h.Read, http.StatusOK))
func Handle[Res any](h Handler, handler HandlerFunc[Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, false, func(c echo.Context, _ validation.Params) (any, error) {
			return handler(c)
		}, envelopeResponse{status: status, withData: true})
	}
}

// HandleWithParams parses the request body and query string before calling
// the endpoint. Malformed bodies fail with 400 before the endpoint runs.
func HandleWithParams[Res any](h Handler, handler ParamsHandlerFunc[Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, true, func(c echo.Context, params validation.Params) (any, error) {
			return handler(c, params)
		}, envelopeResponse{status: status, withData: true})
	}
}

// HandleNoData wraps an endpoint that answers {"status": true}.
func HandleNoData(h Handler, handler HandlerFuncNoData, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, false, func(c echo.Context, _ validation.Params) (any, error) {
			return nil, handler(c)
		}, envelopeResponse{status: status})
	}
}
