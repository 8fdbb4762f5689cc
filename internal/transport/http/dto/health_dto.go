package dto

type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

type SessionClearedResponse struct {
	CallerID string `json:"callerId"`
	Cleared  bool   `json:"cleared"`
}
