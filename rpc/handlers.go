package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Cogwheel-Validator/spectra-swap-gateway/engine"
	"github.com/Cogwheel-Validator/spectra-swap-gateway/models"
)

// signerKeyHeader carries the per-request signing credential out of band.
// It must never appear in a request body, a response or a log line.
const signerKeyHeader = "X-Signer-Key"

// Handler serves the two JSON endpoints on top of the swap pipeline.
type Handler struct {
	swapper *engine.Swapper
}

func NewHandler(swapper *engine.Swapper) *Handler {
	return &Handler{swapper: swapper}
}

// Quote handles POST /v1/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		quoteRequests.WithLabelValues("invalid_input").Inc()
		writeError(w, fmt.Errorf("%w: malformed JSON body", engine.ErrInvalidInput))
		return
	}

	result, err := h.swapper.QuoteExactIn(r.Context(), req.AmountIn, req.TokenIn, req.TokenOut)
	if err != nil {
		quoteRequests.WithLabelValues(outcomeLabel(err)).Inc()
		writeError(w, err)
		return
	}

	quoteRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, models.QuoteResponse{
		FeeTier:      result.FeeTier,
		AmountOut:    result.AmountOut,
		AmountOutRaw: result.AmountOutRaw.String(),
	})
}

// Swap handles POST /v1/swap.
func (h *Handler) Swap(w http.ResponseWriter, r *http.Request) {
	credential := r.Header.Get(signerKeyHeader)

	var req models.SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		swapRequests.WithLabelValues("invalid_input").Inc()
		writeError(w, fmt.Errorf("%w: malformed JSON body", engine.ErrInvalidInput))
		return
	}

	hash, err := h.swapper.ExecuteSwap(r.Context(), credential, req.AmountIn, req.TokenIn, req.TokenOut)
	if err != nil {
		swapRequests.WithLabelValues(outcomeLabel(err)).Inc()
		writeError(w, err)
		return
	}

	swapRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, models.SwapResponse{TransactionHash: hash.Hex()})
}

// statusFor keeps the coarse status contract: input and credential problems
// are the client's fault, everything else surfaces as a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, engine.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, engine.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, engine.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, engine.ErrNoLiquidity):
		return "no_liquidity"
	default:
		return "downstream"
	}
}

func writeError(w http.ResponseWriter, err error) {
	if outcomeLabel(err) == "downstream" {
		Logger.Error().Err(err).Msg("request failed downstream")
	}
	writeJSON(w, statusFor(err), models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		Logger.Error().Err(err).Msg("failed to encode response")
	}
}
