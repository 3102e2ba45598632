package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/property-forecast/internal/calculator"
	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/internal/market"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/loans"
	"github.com/iwvelando/property-forecast/pkg/output"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request identifier echoed on every response.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type handler struct {
	logger        *zap.Logger
	markets       *market.Store
	schedules     *loans.ScheduleGenerator
	maxUploadSize int64
	version       string
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the projection and
// market API. A nil store serves the bundled market table.
func NewHandler(logger *zap.Logger, markets *market.Store, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if markets == nil {
		table, err := market.Default()
		if err != nil {
			panic(fmt.Sprintf("failed to load bundled market table: %v", err))
		}
		markets = market.NewStore(table)
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		markets:       markets,
		schedules:     loans.NewScheduleGenerator(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		now:           time.Now,
	}

	// Routes live on the root router so a method mismatch on any path
	// reports 405 rather than 404.
	router := mux.NewRouter()
	router.Use(h.requestID)
	router.MethodNotAllowedHandler = h.requestID(http.HandlerFunc(h.handleMethodNotAllowed))

	// Single property projection from form inputs
	router.HandleFunc("/api/projection", h.handleProjection).Methods(http.MethodPost)

	// Portfolio projection (file upload)
	router.HandleFunc("/api/forecast", h.handleForecast).Methods(http.MethodPost)

	router.HandleFunc("/api/amortization", h.handleAmortization).Methods(http.MethodGet)

	// Market data
	router.HandleFunc("/api/markets", h.handleMarkets).Methods(http.MethodGet)
	router.HandleFunc("/api/markets/{name}", h.handleMarket).Methods(http.MethodGet)
	router.HandleFunc("/api/markets/{name}/report", h.handleMarketReport).Methods(http.MethodGet)
	router.HandleFunc("/api/national", h.handleNational).Methods(http.MethodGet)
	router.HandleFunc("/api/suggestions", h.handleSuggestions).Methods(http.MethodGet)

	// Version endpoint for client metadata
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return router
}

func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path), "server.handleMethodNotAllowed")
}

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

type projectionRequest struct {
	Mode   string               `json:"mode"`
	Inputs calculator.RawInputs `json:"inputs"`
}

type projectionResponse struct {
	Result    *calculator.Result    `json:"result"`
	Series    calculator.Series     `json:"series"`
	Breakdown []calculator.LineItem `json:"breakdown"`
	Ignored   []string              `json:"ignored,omitempty"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"

	var req projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
		return
	}

	mode, err := calculator.ParseMode(req.Mode)
	if err != nil {
		h.respondComputeError(w, r, err, op)
		return
	}

	result, err := calculator.Compute(req.Inputs, mode)
	if err != nil {
		h.respondComputeError(w, r, err, op)
		return
	}

	h.logger.Debug("projection computed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r)),
		zap.String("mode", string(mode)),
		zap.Int("years", len(result.Years)),
	)

	h.writeJSON(w, http.StatusOK, projectionResponse{
		Result:    result,
		Series:    result.Series(),
		Breakdown: result.ExpenseBreakdown(),
		Ignored:   req.Inputs.Ignored(mode),
	})
}

type forecastResponse struct {
	Properties []string            `json:"properties"`
	Forecasts  []forecast.Forecast `json:"forecasts"`
	CSV        string              `json:"csv"`
	Warnings   []string            `json:"warnings,omitempty"`
	Duration   string              `json:"duration"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration(h.markets.Table().Names()...)

	results, err := forecast.GetForecast(h.logger, *cfg)
	if err != nil {
		h.respondComputeError(w, r, err, op)
		return
	}

	elapsed := time.Since(start)
	response := forecastResponse{
		Properties: propertyNames(results),
		Forecasts:  results,
		CSV:        output.CsvString(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r)),
		zap.Int("properties", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type amortizationResponse struct {
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalInterest  float64         `json:"totalInterest"`
	Payments       []loans.Payment `json:"payments"`
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAmortization"

	principal, err := queryFloat(r, "principal", 0, true)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	rate, err := queryFloat(r, "rate", 0, true)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	term, err := queryFloat(r, "term", constants.SimpleLoanTermYears, false)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	schedule, err := h.schedules.GenerateSchedule(principal, rate, term)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, amortizationResponse{
		MonthlyPayment: loans.MonthlyPayment(principal, rate, term),
		TotalInterest:  loans.TotalInterest(schedule),
		Payments:       schedule,
	})
}

type marketsResponse struct {
	Sort    string          `json:"sort"`
	Markets []market.Ranked `json:"markets"`
}

func (h *handler) handleMarkets(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMarkets"

	key := strings.TrimSpace(r.URL.Query().Get("sort"))
	if key == "" {
		key = market.SortCapRate
	}
	rows, err := h.markets.Table().Rank(key)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, marketsResponse{Sort: key, Markets: rows})
}

type marketResponse struct {
	market.Region
	Score            int                   `json:"score"`
	Breakdown        market.ScoreBreakdown `json:"breakdown"`
	PriceToRentRatio float64               `json:"priceToRentRatio"`
	GrossRentalYield float64               `json:"grossRentalYield"`
}

func (h *handler) handleMarket(w http.ResponseWriter, r *http.Request) {
	region, err := h.markets.Table().Region(mux.Vars(r)["name"])
	if err != nil {
		h.respondMarketError(w, r, err, "server.handleMarket")
		return
	}

	h.writeJSON(w, http.StatusOK, marketResponse{
		Region:           region,
		Score:            market.Score(region.Metrics),
		Breakdown:        market.Breakdown(region.Metrics),
		PriceToRentRatio: region.PriceToRentRatio(),
		GrossRentalYield: region.GrossRentalYield(),
	})
}

func (h *handler) handleMarketReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMarketReport"

	analysis, err := h.markets.Table().Analyze(mux.Vars(r)["name"])
	if err != nil {
		h.respondMarketError(w, r, err, op)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		h.writeJSON(w, http.StatusOK, analysis)
		return
	}

	var buf bytes.Buffer
	if err := output.Report(&buf, analysis, h.now()); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write report response", zap.String("op", op), zap.Error(err))
	}
}

type nationalResponse struct {
	Averages market.Metrics       `json:"averages"`
	Score    int                  `json:"score"`
	Rates    market.NationalRates `json:"rates"`
}

func (h *handler) handleNational(w http.ResponseWriter, r *http.Request) {
	table := h.markets.Table()
	averages := table.NationalAverages()
	h.writeJSON(w, http.StatusOK, nationalResponse{
		Averages: averages,
		Score:    market.Score(averages),
		Rates:    table.National(),
	})
}

func (h *handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	price, err := queryFloat(r, "price", 0, false)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), "server.handleSuggestions")
		return
	}

	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.markets.Table().Suggest(market.SuggestionRequest{
		Location:      strings.TrimSpace(q.Get("location")),
		PropertyType:  strings.TrimSpace(q.Get("propertyType")),
		Neighborhood:  strings.TrimSpace(q.Get("neighborhood")),
		PurchasePrice: price,
		BuyerType:     strings.TrimSpace(q.Get("buyerType")),
		LoanType:      strings.TrimSpace(q.Get("loanType")),
	}))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func queryFloat(r *http.Request, key string, fallback float64, required bool) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("missing query parameter %s", key)
		}
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %s: %q is not a number", key, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid query parameter %s: %q is not a finite number", key, raw)
	}
	return value, nil
}

func propertyNames(results []forecast.Forecast) []string {
	names := make([]string, 0, len(results))
	for _, property := range results {
		names = append(names, property.Name)
	}
	return names
}

type errorResponse struct {
	Error     string   `json:"error"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// respondComputeError maps projection errors to statuses: invalid inputs are
// 422 with the offending fields, an unknown mode is 400.
func (h *handler) respondComputeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *calculator.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logFailure(r, http.StatusUnprocessableEntity, err.Error(), op)
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     err.Error(),
			Fields:    verr.Fields(),
			RequestID: requestIDFrom(r),
		})
	case errors.Is(err, calculator.ErrUnknownMode):
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to compute projection: %v", err), op)
	}
}

func (h *handler) respondMarketError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := http.StatusInternalServerError
	if errors.Is(err, market.ErrUnknownMarket) {
		status = http.StatusNotFound
	}
	h.respondErrorWithOp(w, r, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logFailure(r, status, msg, op)
	h.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestIDFrom(r)})
}

func (h *handler) logFailure(r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r)),
		zap.Int("status", status),
		zap.String("error", msg),
	)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
