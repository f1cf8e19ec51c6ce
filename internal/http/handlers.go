package http

import (
	"context"
	"net/http"

	"github.com/chubberlisk/crypto-tech/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Service is the slice of the reminder service the admin surface needs. Both
// triggers bypass the time gates; they exist for operators, not the schedule.
type Service interface {
	RunReminderPass(ctx context.Context) error
	RunEscalationPass(ctx context.Context) error
}

type Handlers struct {
	cfg config.Config
	log zerolog.Logger
	svc Service
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc Service) *Handlers {
	return &Handlers{cfg: cfg, log: log, svc: svc}
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) RemindNow(c *gin.Context) {
	// Detached from the request context so the pass survives the response.
	go func() {
		if err := h.svc.RunReminderPass(context.Background()); err != nil {
			h.log.Error().Err(err).Msg("admin: reminder pass failed")
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *Handlers) EscalateNow(c *gin.Context) {
	go func() {
		if err := h.svc.RunEscalationPass(context.Background()); err != nil {
			h.log.Error().Err(err).Msg("admin: escalation pass failed")
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
