// Package mailer sends the reservation notification emails over SMTP.
package mailer

import (
	"fmt"

	"reservation-service/internal/model"
	"reservation-service/pkg/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers reservation emails through a single configured SMTP
// account, constructed once at startup and shared across requests.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

// New builds a Mailer from the SMTP configuration.
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:       cfg.User,
		adminEmail: cfg.AdminEmail,
	}
}

// SendCustomerConfirmation emails the reservation details to the customer.
func (m *Mailer) SendCustomerConfirmation(r *model.Reservation) error {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #333;">Reservation Confirmation</h2>
        <p>Dear %s %s,</p>
        <p>Thank you for your reservation! Here are your details:</p>

        <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
          <h3 style="margin-top: 0;">CINDERELLA SELF ONLINE STORAGE</h3>
          <p><strong>Address:</strong> 110 San Felipe rd, Hollister, CA 95023</p>
          <p><strong>Phone:</strong> +1 (831) 637-5761</p>

          <hr style="margin: 20px 0;">

          <p><strong>Space:</strong> %s (%s)</p>
          <p><strong>Monthly Rent:</strong> $%d</p>
          <p><strong>Admin Fee:</strong> $%d</p>
          <p><strong>Move-in Date:</strong> %s</p>
          <p><strong>Total Cost:</strong> $%d</p>
          <p><strong>Security Deposit:</strong> $%d</p>
        </div>

        <p>Best regards,<br>Cinderella Self Storage Team</p>
      </div>`,
		r.FirstName, r.LastName,
		r.SpaceNumber, r.SpaceSize,
		r.MonthlyRent,
		r.AdminFee,
		r.MoveInDate.Format("1/2/2006"),
		r.TotalCost,
		r.SecurityDeposit,
	)

	return m.send(r.Email, "CINDERELLA SELF ONLINE STORAGE", body)
}

// SendAdminAlert emails the operator about a new reservation.
func (m *Mailer) SendAdminAlert(r *model.Reservation) error {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif;">
        <h2>New Reservation Alert</h2>
        <p><strong>Customer:</strong> %s %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Mobile:</strong> %s</p>
        <p><strong>Space:</strong> %s</p>
        <p><strong>Move-in Date:</strong> %s</p>
        <p><strong>Time:</strong> %s</p>
      </div>`,
		r.FirstName, r.LastName,
		r.Email,
		r.Mobile,
		r.SpaceNumber,
		r.MoveInDate.Format("1/2/2006"),
		r.CreatedAt.Format("1/2/2006, 3:04:05 PM"),
	)

	return m.send(m.adminEmail, "New Storage Reservation", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// Noop is a Notifier used when no SMTP account is configured, e.g. in local
// development without EMAIL_USER set.
type Noop struct{}

func (Noop) SendCustomerConfirmation(*model.Reservation) error { return nil }
func (Noop) SendAdminAlert(*model.Reservation) error           { return nil }
