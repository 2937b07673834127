package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status — агрегированное состояние сервиса или отдельной пробы.
type Status string

const (
	// StatusUp — все пробы прошли.
	StatusUp Status = "up"
	// StatusDegraded — упала только необязательная проба: сервис
	// продолжает принимать пакеты, но, например, уведомления не уходят.
	StatusDegraded Status = "degraded"
	// StatusDown — упала критичная проба, записывать заказы нельзя.
	StatusDown Status = "down"
)

// defaultProbeTimeout ограничивает каждую пробу по отдельности, чтобы
// зависший брокер не растягивал весь ответ health-эндпоинта.
const defaultProbeTimeout = 2 * time.Second

// CheckFunc проверяет доступность одной зависимости.
type CheckFunc func(ctx context.Context) error

// Check — результат одной пробы в составе отчёта.
type Check struct {
	Status     Status `json:"status"`
	Critical   bool   `json:"critical"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Report — полный ответ health-эндпоинта.
type Report struct {
	Status        Status           `json:"status"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Checks        map[string]Check `json:"checks,omitempty"`
}

type probe struct {
	critical bool
	check    CheckFunc
}

// Handler собирает пробы зависимостей и обслуживает health-эндпоинты.
// Критичность пробы определяет, блокирует ли её сбой готовность:
// хранилище заказов критично, издатель уведомлений — нет (пакет
// сохраняется и без него, сбой публикации отражается в ответе записи).
type Handler struct {
	mu      sync.RWMutex
	probes  map[string]probe
	version string
	started time.Time
	timeout time.Duration
}

// NewHandler создаёт handler без проб; версия попадает в отчёт.
func NewHandler(version string) *Handler {
	return &Handler{
		probes:  make(map[string]probe),
		version: version,
		started: time.Now(),
		timeout: defaultProbeTimeout,
	}
}

// RegisterCritical регистрирует пробу, сбой которой означает неготовность.
func (h *Handler) RegisterCritical(name string, check CheckFunc) {
	h.register(name, probe{critical: true, check: check})
}

// RegisterOptional регистрирует пробу, сбой которой лишь деградирует статус.
func (h *Handler) RegisterOptional(name string, check CheckFunc) {
	h.register(name, probe{critical: false, check: check})
}

func (h *Handler) register(name string, p probe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[name] = p
}

func (h *Handler) snapshot() map[string]probe {
	h.mu.RLock()
	defer h.mu.RUnlock()
	probes := make(map[string]probe, len(h.probes))
	for name, p := range h.probes {
		probes[name] = p
	}
	return probes
}

// Evaluate прогоняет все пробы и собирает агрегированный отчёт.
func (h *Handler) Evaluate(ctx context.Context) Report {
	checks := make(map[string]Check)
	overall := StatusUp

	for name, p := range h.snapshot() {
		result := h.runProbe(ctx, p)
		checks[name] = result

		if result.Status != StatusDown {
			continue
		}
		if p.critical {
			overall = StatusDown
		} else if overall == StatusUp {
			overall = StatusDegraded
		}
	}

	return Report{
		Status:        overall,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Checks:        checks,
	}
}

func (h *Handler) runProbe(ctx context.Context, p probe) Check {
	probeCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.check(probeCtx)
	elapsed := time.Since(start)

	if err != nil {
		return Check{
			Status:     StatusDown,
			Critical:   p.critical,
			Error:      err.Error(),
			DurationMs: elapsed.Milliseconds(),
		}
	}
	return Check{
		Status:     StatusUp,
		Critical:   p.critical,
		DurationMs: elapsed.Milliseconds(),
	}
}

// ServeHTTP отдаёт полный отчёт; 503 только при недоступной критичной
// зависимости, деградация остаётся с кодом 200.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := h.Evaluate(r.Context())

	statusCode := http.StatusOK
	if report.Status == StatusDown {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(report)
}

// ReadinessHandler — readiness probe: готовность определяется только
// критичными зависимостями.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	for _, p := range h.snapshot() {
		if !p.critical {
			continue
		}
		if result := h.runProbe(r.Context(), p); result.Status == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LivenessHandler — liveness probe, отвечает 200 пока процесс жив.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
