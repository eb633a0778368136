package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/infra/queue"
)

// Client entrega webhooks de automação (n8n). A entrega é melhor
// esforço: quem chama decide se loga e segue ou manda para a DLQ.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) DeliverLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error {
	if c.webhookURL == "" {
		// Sem endpoint configurado o webhook é simplesmente descartado
		log.Println("⚠️ Automação: WEBHOOK_URL não configurada, descartando lead.created")
		return nil
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
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("automation endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
