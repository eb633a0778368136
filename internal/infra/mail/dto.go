package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

type AppointmentEmailData struct {
	Name      string
	Procedure string
	StartsAt  string
}
