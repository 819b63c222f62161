package http

import (
	"net/http"

	"fleetrent-backend/internal/service"
)

type monitoringHandler struct {
	svc service.MonitoringService
}

type countResponse struct {
	Count int64 `json:"count"`
}

// pageParams reads ?page= and ?pageSize=; the service clamps them.
func pageParams(r *http.Request) (int, int, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := queryInt(r, "pageSize", 10)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func monthParams(r *http.Request) (int, int, error) {
	year, err := pathInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	month, err := pathInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func (h *monitoringHandler) rents(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	count, err := h.svc.FindRents(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *monitoringHandler) sum(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.svc.FindIncome(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *monitoringHandler) rentsByMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	count, err := h.svc.FindRentsByMonth(r.Context(), year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *monitoringHandler) sumByMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.svc.FindIncomeByMonth(r.Context(), year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *monitoringHandler) ownersIncome(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.FindIncomeByPersentage(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *monitoringHandler) history(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.svc.FindHistory(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
