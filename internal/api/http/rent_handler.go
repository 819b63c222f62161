package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type rentHandler struct {
	svc service.RentService
}

func (h *rentHandler) create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateRentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	rent, err := h.svc.CreateRent(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rent)
}

// list supports ?guaranteeCash=true and ?guaranteeCard=true.
func (h *rentHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := domain.RentFilter{
		GuaranteeCash: queryBool(r, "guaranteeCash"),
		GuaranteeCard: queryBool(r, "guaranteeCard"),
	}
	rents, err := h.svc.ListRents(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rents)
}

func (h *rentHandler) page(w http.ResponseWriter, r *http.Request) {
	take, err := queryInt(r, "take", 20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rents, err := h.svc.ListRentsPage(r.Context(), take, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rents)
}

func (h *rentHandler) search(w http.ResponseWriter, r *http.Request) {
	rents, err := h.svc.SearchRents(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rents)
}

func (h *rentHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rent, err := h.svc.GetRent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}

func (h *rentHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdateRentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	rent, err := h.svc.UpdateRent(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}

func (h *rentHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.RemoveRent(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *rentHandler) createExtension(w http.ResponseWriter, r *http.Request) {
	rentID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.CreateExtensionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	ext, err := h.svc.CreateExtension(r.Context(), rentID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ext)
}

func (h *rentHandler) getExtension(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ext, err := h.svc.GetExtension(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ext)
}

func (h *rentHandler) updateExtension(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdateExtensionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	ext, err := h.svc.UpdateExtension(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ext)
}

func (h *rentHandler) deleteExtension(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ext, err := h.svc.DeleteExtension(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ext)
}
