package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/service"
)

// statementHandler streams archived monthly statements.
type statementHandler struct {
	svc service.StatementService
}

func (h *statementHandler) download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	st, err := h.svc.OpenStatement(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer st.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.FormatInt(st.Size, 10))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, st.Body); err != nil {
		logger.WarnContext(r.Context(), "Statement download interrupted", "key", key, "error", err)
	}
}
