package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

func (s *EmailSender) SendAppointmentConfirmation(to, name, procedure string, startsAt time.Time) error {
	data := AppointmentEmailData{
		Name:      name,
		Procedure: procedure,
		StartsAt:  startsAt.Format("02/01/2006 15:04"),
	}

	tmplPath := filepath.Join("templates", "appointment_confirmation.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@atendecrm.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Agendamento confirmado, %s! 📅", name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
