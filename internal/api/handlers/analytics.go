package handlers

import (
	"net/http"
	"strconv"

	"github.com/traderscope/journal/backend/internal/analytics"
	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/logger"
	"github.com/traderscope/journal/backend/pkg/redis"
)

// AnalyticsHandler serves derived performance metrics. Each endpoint
// fetches the user's trades once and runs the pure computation over them;
// responses may be cached with a short TTL, but the engine itself never
// caches.
type AnalyticsHandler struct {
	repo   *journal.Repository
	cache  *redis.Cache
	cfg    *config.Config
	logger *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(repo *journal.Repository, cache *redis.Cache, cfg *config.Config, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		repo:   repo,
		cache:  cache,
		cfg:    cfg,
		logger: log,
	}
}

// Metrics returns the comprehensive performance snapshot
// GET /api/analytics/metrics?initial_capital=25000
func (h *AnalyticsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "metrics", func(trades []journal.Trade) interface{} {
		return analytics.CalculateMetrics(trades, h.initialCapital(r))
	})
}

// EquityCurve returns the daily equity time series
// GET /api/analytics/equity-curve?initial_capital=25000
func (h *AnalyticsHandler) EquityCurve(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "equity-curve", func(trades []journal.Trade) interface{} {
		return analytics.EquityCurve(trades, h.initialCapital(r))
	})
}

// Monthly returns the per-month breakdown
// GET /api/analytics/monthly
func (h *AnalyticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "monthly", func(trades []journal.Trade) interface{} {
		return analytics.ByMonth(trades)
	})
}

// Symbols returns the per-symbol breakdown
// GET /api/analytics/symbols
func (h *AnalyticsHandler) Symbols(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "symbols", func(trades []journal.Trade) interface{} {
		return analytics.BySymbol(trades)
	})
}

// Strategies returns the per-strategy breakdown
// GET /api/analytics/strategies
func (h *AnalyticsHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "strategies", func(trades []journal.Trade) interface{} {
		return analytics.ByStrategy(trades)
	})
}

// TradeTypes returns the long/short breakdown
// GET /api/analytics/trade-types
func (h *AnalyticsHandler) TradeTypes(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "trade-types", func(trades []journal.Trade) interface{} {
		return analytics.ByTradeType(trades)
	})
}

// TimeOfDay returns the session-slot breakdown
// GET /api/analytics/time-of-day
func (h *AnalyticsHandler) TimeOfDay(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "time-of-day", func(trades []journal.Trade) interface{} {
		return analytics.ByTimeOfDay(trades)
	})
}

// Heatmap returns the 7x24 day/hour performance grid
// GET /api/analytics/heatmap
func (h *AnalyticsHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "heatmap", func(trades []journal.Trade) interface{} {
		return analytics.Heatmap(trades)
	})
}

// Distribution returns the P&L histogram
// GET /api/analytics/distribution?bins=10
func (h *AnalyticsHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	bins := 0
	if s := r.URL.Query().Get("bins"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			bins = n
		}
	}

	h.serve(w, r, "distribution", func(trades []journal.Trade) interface{} {
		return analytics.PnLDistribution(trades, bins)
	})
}

// serve is the shared fetch-compute-respond path for analytics endpoints.
// Results are cached per user and endpoint; query parameters skip the
// cache since they change the result shape.
func (h *AnalyticsHandler) serve(w http.ResponseWriter, r *http.Request, endpoint string, compute func([]journal.Trade) interface{}) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	cacheable := len(r.URL.Query()) == 0
	cacheKey := redis.AnalyticsKey(userID, endpoint)

	if cacheable {
		var cached interface{}
		found, err := h.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			h.logger.WithError(err).Warn("Analytics cache read failed")
		}
		if found {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	filter, err := tradeFilterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := h.repo.ListTrades(ctx, userID, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load trades for analytics")
		respondError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	result := compute(trades)

	if cacheable {
		if err := h.cache.Set(ctx, cacheKey, result, h.cfg.Journal.AnalyticsCacheTTL); err != nil {
			h.logger.WithError(err).Warn("Analytics cache write failed")
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// initialCapital reads the optional override, falling back to config
func (h *AnalyticsHandler) initialCapital(r *http.Request) float64 {
	if s := r.URL.Query().Get("initial_capital"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			return v
		}
	}
	return h.cfg.Journal.InitialCapital
}
