package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/bestprice-backend/api/responses"
	"github.com/angelmondragon/bestprice-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

const envHeader = "X-BestPrice-Env"

const readyTimeout = 2 * time.Second

// Checker is a readiness probe for one dependency.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Ping(ctx context.Context) error { return f(ctx) }

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every named check passes. Nil checks
// are skipped so optional dependencies can be left unwired.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := map[string]string{}
		var failed []string
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				status[name] = "down"
				failed = append(failed, name)
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"check": name, "error": err.Error()}), "health.check_failed")
				}
				continue
			}
			status[name] = "up"
		}

		if len(failed) > 0 {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "not ready").
				WithDetails(map[string]any{"checks": status}))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": status})
	}
}
