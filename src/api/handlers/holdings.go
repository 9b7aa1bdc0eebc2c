package handlers

import (
	"context"
	"net/http"
	"time"

	"portfolio/src/schemas"
)

const requestTimeout = 10 * time.Second

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}

	holdings, err := h.Controller.ListHoldings(ctx, userID)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	var req schemas.HoldingRequest
	if !h.decode(w, r, &req) {
		return
	}

	holding, err := h.Controller.InsertHolding(ctx, userID, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, holding, http.StatusCreated)
}

func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	recordID, ok := h.urlParamInt(w, r, "recordID")
	if !ok {
		return
	}
	var req schemas.HoldingRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Controller.UpdateHolding(ctx, userID, recordID, &req); err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, messageResponse("Holding updated successfully"), http.StatusOK)
}

func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	recordID, ok := h.urlParamInt(w, r, "recordID")
	if !ok {
		return
	}

	deleted, err := h.Controller.DeleteHolding(ctx, userID, recordID)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	if !deleted {
		h.respond(w, r, messageResponse("Holding not found or already deleted"), http.StatusOK)
		return
	}
	h.respond(w, r, messageResponse("Holding deleted successfully"), http.StatusOK)
}

func (h *Handler) BuyHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	var req schemas.BuyRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Controller.Buy(ctx, userID, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.respond(w, r, result, status)
}

func (h *Handler) SellHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	var req schemas.SellRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Controller.Sell(ctx, userID, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}
