package http

import (
	"net/http"

	"fleetrent-backend/internal/service"
)

type carHandler struct {
	svc service.CarService
}

func (h *carHandler) create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCarInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.svc.CreateCar(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *carHandler) list(w http.ResponseWriter, r *http.Request) {
	cars, err := h.svc.ListCars(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *carHandler) free(w http.ResponseWriter, r *http.Request) {
	cars, err := h.svc.ListFreeCars(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *carHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.svc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *carHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdateCarInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.svc.UpdateCar(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *carHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.RemoveCar(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
