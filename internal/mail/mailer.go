package mail

import (
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/config"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type Mailer interface {
	SendMaintenanceScheduleEmail(to []string, scheduleName string, job *entity.ScheduleJobEntity) error
	SendTransitionNotification(to []string, event *worker_task.TransitionNotifyPayload) error
}

type MailService struct {
	DomainSender string
	http         *resty.Client
}

func NewMailer(cfg *config.AppConfig) Mailer {
	if cfg.APP.State == "prod" {
		return NewMailService(cfg.MAILTRAP.API.MailtrapURL, cfg.MAILTRAP.API.MailtrapTokenAPI, cfg.MAILTRAP.API.MailtrapDomain)
	}
	return NewMailService(cfg.MAILTRAP.Sandbox.SandboxURL, cfg.MAILTRAP.Sandbox.SandboxAPI, cfg.MAILTRAP.Sandbox.SandboxDomain)
}

func NewMailService(url, token, sender string) *MailService {
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(10*time.Second).
		SetAuthToken(token).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Content-Type", "application/json")

	return &MailService{DomainSender: sender, http: client}
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type message struct {
	From     address   `json:"from"`
	To       []address `json:"to"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text"`
	Category string    `json:"category"`
}

func (m *MailService) SendMaintenanceScheduleEmail(to []string, scheduleName string, job *entity.ScheduleJobEntity) error {
	log.Info().Str("schedule_job_id", job.ID).Int("recipients", len(to)).Msg("Mailer: maintenance schedule email")

	return m.send(message{
		From:    address{Email: m.DomainSender, Name: "BMCMS - Wartungsplan"},
		To:      addresses(to),
		Subject: fmt.Sprintf("Maintenance scheduled: %s on %s", scheduleName, job.RunDate.Format("02 Jan 2006")),
		Text: fmt.Sprintf(`
		Hi,

		A maintenance job has been scheduled.

		Schedule	: %s
		Location	: %s
		Run date	: %s
		Status		: %s

		Please prepare the site and the required staff before the run date.

		BMCMS Maintenance
		`, scheduleName, job.BuildingDetailID, job.RunDate.Format("02 Jan 2006"), job.Status),
		Category: "Maintenance Schedule",
	})
}

func (m *MailService) SendTransitionNotification(to []string, event *worker_task.TransitionNotifyPayload) error {
	return m.send(message{
		From:    address{Email: m.DomainSender, Name: "BMCMS - Statusänderung"},
		To:      addresses(to),
		Subject: fmt.Sprintf("%s %s is now %s", event.Kind, event.EntityID, event.To),
		Text: fmt.Sprintf(`
		Hi,

		A work item you are involved in has changed.

		Item	: %s %s
		Task	: %s
		From	: %s
		To		: %s
		At		: %s

		BMCMS Maintenance
		`, event.Kind, event.EntityID, event.TaskID, event.From, event.To, event.OccurredAt.Format("02 Jan 2006 15:04 MST")),
		Category: "Work Item Status",
	})
}

func (m *MailService) send(msg message) error {
	if len(msg.To) == 0 {
		log.Warn().Str("subject", msg.Subject).Msg("Mailer: no recipients, skipped")
		return nil
	}

	resp, err := m.http.R().SetBody(msg).Post("")
	if err != nil {
		log.Error().Err(err).Msg("Error when get response from server.")
		return err
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("mailtrap send failed: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}

func addresses(emails []string) []address {
	out := make([]address, 0, len(emails))
	for _, e := range emails {
		out = append(out, address{Email: e})
	}
	return out
}
