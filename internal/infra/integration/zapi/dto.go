package zapi

type SendMessageInput struct {
	Phone     string // Ex: "5511999999999"
	Message   string
	MediaURL  string
	MediaType string // image, audio, document
}

// payload enviado ao endpoint de automação do Z-API
type sendMessageRequest struct {
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	ZAPIInstanceID string `json:"zapi_instance_id"`
	ZAPIToken      string `json:"zapi_token"`
	MediaURL       string `json:"media_url,omitempty"`
	MediaType      string `json:"media_type,omitempty"`
}

type sendMessageResponse struct {
	MessageID string         `json:"message_id"`
	Error     *errorResponse `json:"error"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
