package usecase

type CreateLeadInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Source      string `json:"source"`
	Interest    string `json:"interest"`
	BudgetCents int64  `json:"budget_cents"`
	Notes       string `json:"notes"`
	Temperature string `json:"temperature"`
}

type CreateLeadOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// ChangeLeadStatusInput carrega o status desejado e, apenas quando o
// destino é lost, o motivo confirmado pelo usuário.
type ChangeLeadStatusInput struct {
	Status          string `json:"status"`
	LossReason      string `json:"loss_reason,omitempty"`
	LossDescription string `json:"loss_description,omitempty"`
}

type CreateAppointmentInput struct {
	LeadID         string `json:"lead_id"`
	ClientID       string `json:"client_id"`
	ProfessionalID string `json:"professional_id"`
	Procedure      string `json:"procedure"`
	StartsAt       string `json:"starts_at"` // ISO8601
	ValueCents     int64  `json:"value_cents"`
}

type SendMessageInput struct {
	LeadID    string `json:"lead_id"`
	Phone     string `json:"phone"`
	Body      string `json:"message"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

type DashboardOutput struct {
	LeadsByStatus map[string]int `json:"leads_by_status"`
	LossReasons   map[string]int `json:"loss_reasons"`
	RevenueCents  int64          `json:"revenue_cents"`
	GeneratedAt   string         `json:"generated_at"`
}
