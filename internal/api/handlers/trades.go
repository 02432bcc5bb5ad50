package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/logger"
	"github.com/traderscope/journal/backend/pkg/redis"
)

// UserIDHeader carries the authenticated user identity set by the
// upstream auth proxy.
const UserIDHeader = "X-User-ID"

// TradeHandler handles trade CRUD endpoints
type TradeHandler struct {
	repo   *journal.Repository
	cache  *redis.Cache
	logger *logger.Logger
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(repo *journal.Repository, cache *redis.Cache, log *logger.Logger) *TradeHandler {
	return &TradeHandler{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// TradeRequest represents a trade create/update payload
type TradeRequest struct {
	Symbol         string   `json:"symbol"`
	Side           string   `json:"side"` // "long" or "short"
	EntryPrice     float64  `json:"entry_price"`
	ExitPrice      float64  `json:"exit_price"`
	EntryTime      string   `json:"entry_time"` // RFC 3339
	ExitTime       string   `json:"exit_time"`
	Quantity       float64  `json:"quantity"`
	ProfitLoss     float64  `json:"profit_loss"`
	Strategy       string   `json:"strategy,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	EmotionalState string   `json:"emotional_state,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// toTrade validates the payload and converts it to a journal.Trade
func (req *TradeRequest) toTrade(userID string) (*journal.Trade, error) {
	if req.Symbol == "" {
		return nil, errors.New("symbol is required")
	}

	side := journal.Side(req.Side)
	if !side.Valid() {
		return nil, errors.New("side must be 'long' or 'short'")
	}

	if req.EntryPrice <= 0 || req.ExitPrice <= 0 {
		return nil, errors.New("entry_price and exit_price must be positive")
	}

	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	entryTime, err := time.Parse(time.RFC3339, req.EntryTime)
	if err != nil {
		return nil, errors.New("entry_time must be RFC 3339")
	}

	exitTime, err := time.Parse(time.RFC3339, req.ExitTime)
	if err != nil {
		return nil, errors.New("exit_time must be RFC 3339")
	}

	return &journal.Trade{
		UserID:         userID,
		Symbol:         req.Symbol,
		Side:           side,
		EntryPrice:     req.EntryPrice,
		ExitPrice:      req.ExitPrice,
		EntryTime:      entryTime,
		ExitTime:       exitTime,
		Quantity:       req.Quantity,
		ProfitLoss:     req.ProfitLoss,
		Strategy:       req.Strategy,
		Tags:           req.Tags,
		EmotionalState: req.EmotionalState,
		Notes:          req.Notes,
	}, nil
}

// List returns the user's trades
// GET /api/trades?from=2024-01-01&to=2024-12-31&symbol=AAPL
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	filter, err := tradeFilterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := h.repo.ListTrades(ctx, userID, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list trades")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve trades")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

// Get returns a single trade
// GET /api/trades/{id}
func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	tradeID := mux.Vars(r)["id"]

	trade, err := h.repo.GetTrade(ctx, userID, tradeID)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Trade not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get trade")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve trade")
		return
	}

	respondJSON(w, http.StatusOK, trade)
}

// Create logs a new trade
// POST /api/trades
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trade, err := req.toTrade(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.CreateTrade(ctx, trade); err != nil {
		h.logger.WithError(err).Error("Failed to create trade")
		respondError(w, http.StatusInternalServerError, "Failed to create trade")
		return
	}

	h.invalidateAnalytics(ctx, userID)

	h.logger.WithFields(map[string]interface{}{
		"trade_id": trade.ID,
		"symbol":   trade.Symbol,
		"pnl":      trade.ProfitLoss,
	}).Info("Trade logged")

	respondJSON(w, http.StatusCreated, trade)
}

// Update replaces an existing trade
// PUT /api/trades/{id}
func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	tradeID := mux.Vars(r)["id"]

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trade, err := req.toTrade(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	trade.ID = tradeID

	if err := h.repo.UpdateTrade(ctx, trade); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Trade not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update trade")
		respondError(w, http.StatusInternalServerError, "Failed to update trade")
		return
	}

	h.invalidateAnalytics(ctx, userID)

	respondJSON(w, http.StatusOK, trade)
}

// Delete soft-deletes a trade
// DELETE /api/trades/{id}
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	tradeID := mux.Vars(r)["id"]

	if err := h.repo.DeleteTrade(ctx, userID, tradeID); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Trade not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete trade")
		respondError(w, http.StatusInternalServerError, "Failed to delete trade")
		return
	}

	h.invalidateAnalytics(ctx, userID)

	h.logger.WithField("trade_id", tradeID).Info("Trade deleted")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"trade_id": tradeID,
	})
}

// invalidateAnalytics drops the user's cached analytics after a mutation
func (h *TradeHandler) invalidateAnalytics(ctx context.Context, userID string) {
	if err := h.cache.DeletePattern(ctx, redis.AnalyticsUserPattern(userID)); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate analytics cache")
	}
}

// tradeFilterFromQuery parses optional list filters from the query string
func tradeFilterFromQuery(r *http.Request) (journal.TradeFilter, error) {
	var filter journal.TradeFilter

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, errors.New("from must be YYYY-MM-DD")
		}
		filter.From = &t
	}

	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, errors.New("to must be YYYY-MM-DD")
		}
		// Inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}

	filter.Symbol = r.URL.Query().Get("symbol")

	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return filter, errors.New("limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	return filter, nil
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
