// Package metrics exposes the business gauges scraped from /metrics.
// Gauges are recomputed from the database over a trailing 30-day window;
// only the HTTP error counter is incremented inline.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

const Window = 30 * 24 * time.Hour

type Collector struct {
	stats    repository.StatsRepository
	currency string
	log      *slog.Logger

	httpErrors           *prometheus.CounterVec
	brandPopularity      *prometheus.GaugeVec
	maintenanceCompleted *prometheus.GaugeVec
	rentsCreated         *prometheus.GaugeVec
	financeProfit        *prometheus.GaugeVec
	financeDebt          *prometheus.GaugeVec
	userActivity         *prometheus.GaugeVec

	mu            sync.Mutex
	managerGroups []string
}

func NewCollector(stats repository.StatsRepository, currency string, managerGroups []string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	// The activity query lowercases role names before matching, so the
	// filter list has to be lowercased too or "Менеджер" never matches.
	lowered := make([]string, len(managerGroups))
	for i, g := range managerGroups {
		lowered[i] = strings.ToLower(g)
	}
	c := &Collector{
		stats:         stats,
		currency:      currency,
		managerGroups: lowered,
		log:           logger.WithService("metrics"),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "app_http_errors_total",
			Help: "HTTP responses with status >= 400.",
		}, []string{"status_code"}),
		brandPopularity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_brand_popularity",
			Help: "Equipment units rented per brand over the trailing window.",
		}, []string{"brand"}),
		maintenanceCompleted: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_maintenance_completed",
			Help: "Completed maintenance jobs per technician over the trailing window.",
		}, []string{"technician"}),
		rentsCreated: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_rents_created",
			Help: "Successful rent creations per manager over the trailing window.",
		}, []string{"manager"}),
		financeProfit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_finance_profit",
			Help: "Paid rent volume over the trailing window.",
		}, []string{"currency"}),
		financeDebt: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_finance_debt",
			Help: "Unpaid rent volume over the trailing window.",
		}, []string{"currency"}),
		userActivity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_user_activity",
			Help: "Audit log entries per user over the trailing window.",
		}, []string{"user"}),
	}
	reg.MustRegister(
		c.httpErrors,
		c.brandPopularity,
		c.maintenanceCompleted,
		c.rentsCreated,
		c.financeProfit,
		c.financeDebt,
		c.userActivity,
	)
	return c
}

// ObserveHTTPError counts an error response by status code.
func (c *Collector) ObserveHTTPError(statusCode int) {
	c.httpErrors.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Refresh recomputes every database-backed gauge. Each gauge vector is
// reset before repopulation so labels that fell out of the window drop to
// absent rather than going stale.
func (c *Collector) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	since := time.Now().Add(-Window)

	brands, err := c.stats.BrandPopularitySince(ctx, since)
	if err != nil {
		return fmt.Errorf("brand popularity: %w", err)
	}
	setCounts(c.brandPopularity, brands)

	completed, err := c.stats.MaintenanceCompletedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("maintenance completed: %w", err)
	}
	setCounts(c.maintenanceCompleted, completed)

	managers, err := c.stats.ManagerActivitySince(ctx, since, c.managerGroups)
	if err != nil {
		return fmt.Errorf("manager activity: %w", err)
	}
	setCounts(c.rentsCreated, managers)

	users, err := c.stats.UserActivitySince(ctx, since)
	if err != nil {
		return fmt.Errorf("user activity: %w", err)
	}
	setCounts(c.userActivity, users)

	profit, debt, err := c.stats.FinanceSince(ctx, since)
	if err != nil {
		return fmt.Errorf("finance: %w", err)
	}
	c.financeProfit.Reset()
	c.financeProfit.WithLabelValues(c.currency).Set(profit.InexactFloat64())
	c.financeDebt.Reset()
	c.financeDebt.WithLabelValues(c.currency).Set(debt.InexactFloat64())

	c.log.Debug("business metrics refreshed",
		"brands", len(brands), "technicians", len(completed), "managers", len(managers), "users", len(users))
	return nil
}

func setCounts(vec *prometheus.GaugeVec, counts map[string]int64) {
	vec.Reset()
	for label, n := range counts {
		vec.WithLabelValues(label).Set(float64(n))
	}
}
