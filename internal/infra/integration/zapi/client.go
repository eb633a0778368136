package zapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client envia mensagens de WhatsApp via instância Z-API configurada
// no endpoint de automação.
type Client struct {
	webhookURL string
	instanceID string
	token      string
	httpClient *http.Client
}

func NewClient(webhookURL, instanceID, token string) *Client {
	return &Client{
		webhookURL: webhookURL,
		instanceID: instanceID,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) error {
	if c.webhookURL == "" || c.instanceID == "" || c.token == "" {
		log.Println("⚠️ Z-API: WEBHOOK_URL, INSTANCE_ID ou TOKEN não configurados")
		return fmt.Errorf("z-api não configurado")
	}

	payload := sendMessageRequest{
		Phone:          input.Phone,
		Message:        input.Message,
		ZAPIInstanceID: c.instanceID,
		ZAPIToken:      c.token,
		MediaURL:       input.MediaURL,
		MediaType:      input.MediaType,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Z-API: Erro ao enviar mensagem: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	// Não-2xx estoura erro para a UI desfazer a mensagem otimista
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("❌ Z-API: endpoint retornou status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("z-api error: %d", resp.StatusCode)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(respBody, &result); err == nil && result.Error != nil {
		log.Printf("❌ Z-API: Erro na API: %s (Code: %d)", result.Error.Message, result.Error.Code)
		return fmt.Errorf("z-api: %s", result.Error.Message)
	}

	log.Printf("✅ Z-API: Mensagem enviada para %s", input.Phone)
	return nil
}
