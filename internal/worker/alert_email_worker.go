package worker

// alert_email_worker.go
// Processes low-stock alert jobs from QueueAlertEmail: formats the alert set
// as plain text and sends it to the configured operations address. SMTP
// sends run through a circuit breaker; jobs that still fail land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kuxall/InventoryManagementSystem/internal/dto"
	"github.com/kuxall/InventoryManagementSystem/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertEmailPayload is the job envelope sent to QueueAlertEmail.
type AlertEmailPayload struct {
	Alerts []dto.AlertResponse `json:"alerts"`
}

// AlertEmailWorker sends low-stock notifications via SMTP.
type AlertEmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	to     string
}

func NewAlertEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, to string) *AlertEmailWorker {
	return &AlertEmailWorker{mailer: mailer, cb: cb, to: to}
}

// Process sends one alert email per job.
func (w *AlertEmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload AlertEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_email_worker: invalid payload")
		return
	}
	if len(payload.Alerts) == 0 {
		return
	}
	if w.to == "" || !w.mailer.Enabled() {
		log.Debug().Msg("alert_email_worker: SMTP not configured — dropping alert job")
		return
	}

	subject := fmt.Sprintf("Low inventory alert: %d item(s) below threshold", len(payload.Alerts))
	body := formatAlertBody(payload.Alerts)

	err := w.cb.Execute(func() error {
		return w.mailer.SendAlert(w.to, subject, body, "")
	})
	if err != nil {
		log.Error().Err(err).Str("to", w.to).Msg("alert_email_worker: failed to send alert email")
		SendToDLQ(ctx, rdb, QueueAlertEmail, "alert_email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", w.to).Int("alerts", len(payload.Alerts)).Msg("alert_email_worker: alert email sent")
}

func formatAlertBody(alerts []dto.AlertResponse) string {
	var b strings.Builder
	b.WriteString("The following items are below their reorder threshold:\n\n")
	for _, a := range alerts {
		fmt.Fprintf(&b, "Item: %s is below threshold. Quantity: %d, Threshold: %d\n",
			a.Name, a.Quantity, a.Threshold)
	}
	return b.String()
}
