package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// LedgerTables are probed by the health check; a missing one means migrations have not run.
var LedgerTables = []string{"income", "expenses", "purchases"}

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	Driver     string                `json:"driver,omitempty"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

type HealthHandler struct {
	db      *sql.DB
	driver  string
	timeout time.Duration
}

func NewHealthHandler(db *sql.DB, driver string) *HealthHandler {
	return &HealthHandler{db: db, driver: driver, timeout: 2 * time.Second}
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, http.StatusOK, map[string]string{"status": "OK"})
}

// healthCheckHandler reports the store connection and each ledger table.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    HealthHealthy,
		Driver:    h.driver,
		CheckedAt: time.Now(),
		Components: map[string]CheckEntry{
			"database": h.checkConnection(ctx),
			"ledger":   h.checkTables(ctx),
		},
	}
	for _, c := range resp.Components {
		if c.Status != HealthHealthy {
			resp.Status = HealthUnhealthy
		}
	}

	status := http.StatusOK
	if resp.Status == HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeHealth(w, status, resp)
}

func (h *HealthHandler) checkConnection(ctx context.Context) CheckEntry {
	start := time.Now()
	entry := CheckEntry{Status: HealthHealthy, Details: map[string]any{"driver": h.driver}}
	if err := h.db.PingContext(ctx); err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	entry.DurationMs = time.Since(start).Milliseconds()
	return entry
}

func (h *HealthHandler) checkTables(ctx context.Context) CheckEntry {
	start := time.Now()
	entry := CheckEntry{Status: HealthHealthy, Details: map[string]any{}}
	for _, table := range LedgerTables {
		// table names come from LedgerTables, never from the request
		_, err := h.db.ExecContext(ctx, fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", table))
		if err != nil {
			entry.Status = HealthUnhealthy
			entry.Details[table] = err.Error()
			continue
		}
		entry.Details[table] = "ok"
	}
	if entry.Status == HealthUnhealthy {
		entry.Message = "ledger tables unreachable, run migrate"
	}
	entry.DurationMs = time.Since(start).Milliseconds()
	return entry
}

func writeHealth(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
