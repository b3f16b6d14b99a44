package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/Dan9191/solar-simulator/internal/utils"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

const workbookType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// BuildBenefitReport composes the report message without sending it
func (s *Sender) BuildBenefitReport(to string, d *models.Dashboard, workbook []byte) (*email.Email, error) {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Beneficios solares - %s (%d días)", d.Locality, d.Parameters.HorizonDays)

	// Format email body
	var body strings.Builder
	fmt.Fprintf(&body, "%s\n\n", d.Title)
	fmt.Fprintf(&body, "Horizonte: %d días (%d registros predichos disponibles)\n", d.Parameters.HorizonDays, d.EffectiveDays)
	fmt.Fprintf(&body, "Radiación H: %.1f kWh/m², PR: %.2f\n\n", d.Parameters.Irradiance, d.Parameters.PerformanceRatio)
	if len(d.Results) == 0 {
		body.WriteString("No hay escenarios activos.\n")
	}
	for _, r := range d.Results {
		fmt.Fprintf(&body, "%s\n", r.Scenario)
		fmt.Fprintf(&body, "  Energía generada: %s\n", utils.FormatQuantity(r.EnergyKWh, "kWh"))
		fmt.Fprintf(&body, "  Diésel ahorrado:  %s\n", utils.FormatQuantity(r.DieselLiters, "L"))
		fmt.Fprintf(&body, "  CO₂ evitado:      %s\n", utils.FormatQuantity(r.CO2Kg, "kg"))
		fmt.Fprintf(&body, "  Ahorro económico: %s\n\n", utils.FormatMoney(r.Cost, d.Currency))
	}
	body.WriteString(d.Footnote)
	e.Text = []byte(body.String())

	if len(workbook) > 0 {
		if _, err := e.Attach(bytes.NewReader(workbook), "beneficios.xlsx", workbookType); err != nil {
			return nil, fmt.Errorf("failed to attach workbook: %w", err)
		}
	}
	return e, nil
}

// SendBenefitReport emails the scenario results with the workbook attached
func (s *Sender) SendBenefitReport(to string, d *models.Dashboard, workbook []byte) error {
	e, err := s.BuildBenefitReport(to, d, workbook)
	if err != nil {
		return err
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send benefit report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
