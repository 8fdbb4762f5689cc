package handlers

import (
	"net/http"
	"time"

	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/dto"
)

const banner = "SynkPay Banking Service is running successfully!"

type HealthHandler struct {
	startedAt time.Time
	now       func() time.Time
}

func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, now: time.Now}
}

func (h *HealthHandler) Get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Uptime: h.now().Sub(h.startedAt).Seconds(),
	})
}

func (h *HealthHandler) Banner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(banner))
}
