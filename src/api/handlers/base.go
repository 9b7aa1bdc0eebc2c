package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfolio/src/api/controllers"
	"portfolio/src/schemas"
	"portfolio/src/services"
	"portfolio/src/utils"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(controller *controllers.Controller) *Handler {
	return &Handler{Controller: controller}
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleError maps domain error kinds onto HTTP statuses and writes the
// error payload.
func (h *Handler) HandleError(w http.ResponseWriter, err error) {
	if httpErr, ok := err.(*utils.HTTPError); ok {
		utils.WriteError(w, httpErr)
		return
	}

	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindTickerRequired, services.KindInvalidQuantity, services.KindInvalidPrice,
		services.KindManualPriceRequired, services.KindNameUnavailable, services.KindPriceUnavailable,
		services.KindInsufficientQuantity, services.KindInvalidInput:
		status = http.StatusBadRequest
	case services.KindPositionNotFound, services.KindUserNotFound:
		status = http.StatusNotFound
	case services.KindUserExists:
		status = http.StatusConflict
	case services.KindWrongPassword:
		status = http.StatusUnauthorized
	}
	utils.WriteError(w, utils.NewHTTPError(status, err.Error()))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// urlParamInt parses a numeric chi URL parameter, writing a 400 on failure.
func (h *Handler) urlParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid "+name))
		return 0, false
	}
	return value, true
}

func messageResponse(message string) *schemas.MessageResponse {
	return &schemas.MessageResponse{Message: message}
}
