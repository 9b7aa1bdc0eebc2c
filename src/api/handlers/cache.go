package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ticker := chi.URLParam(r, "ticker")
	result, err := h.Controller.RefreshCache(ctx, ticker)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) GetCacheStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.Controller.CacheStatus(ctx)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) GetMarketPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ticker := chi.URLParam(r, "ticker")
	result, err := h.Controller.GetPrice(ctx, ticker)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) GetMarketQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ticker := chi.URLParam(r, "ticker")
	result, err := h.Controller.GetQuote(ctx, ticker)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}
