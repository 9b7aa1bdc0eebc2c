package handlers

import (
	"context"
	"net/http"

	"portfolio/src/schemas"
)

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	users, err := h.Controller.ListUsers(ctx)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, users, http.StatusOK)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Controller.CreateUser(ctx, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusCreated)
}

func (h *Handler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	var req schemas.VerifyPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Controller.VerifyPassword(ctx, userID, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}
	var req schemas.UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Controller.UpdateUser(ctx, userID, &req); err != nil {
		h.HandleError(w, err)
		return
	}
	h.respond(w, r, messageResponse("User updated successfully"), http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := h.urlParamInt(w, r, "userID")
	if !ok {
		return
	}

	deleted, err := h.Controller.DeleteUser(ctx, userID)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	if !deleted {
		h.respond(w, r, messageResponse("User not found or already deleted"), http.StatusOK)
		return
	}
	h.respond(w, r, messageResponse("User deleted successfully"), http.StatusOK)
}
