package zapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rafaelcosta1/atende-crm/internal/infra/integration/zapi"
)

func TestSendMessageSuccess(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message_id":"msg-123"}`))
	}))
	defer server.Close()

	client := zapi.NewClient(server.URL, "instance-1", "token-abc")

	err := client.SendMessage(context.Background(), zapi.SendMessageInput{
		Phone:   "5511999998888",
		Message: "Olá!",
	})

	assert.NoError(t, err)
	assert.Equal(t, "5511999998888", received["phone"])
	assert.Equal(t, "Olá!", received["message"])
	assert.Equal(t, "instance-1", received["zapi_instance_id"])
	assert.Equal(t, "token-abc", received["zapi_token"])
}

// TestSendMessageNon2xxReturnsError - status fora de 2xx precisa virar
// erro para disparar o rollback da mensagem otimista.
func TestSendMessageNon2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"instance offline"}`))
	}))
	defer server.Close()

	client := zapi.NewClient(server.URL, "instance-1", "token-abc")

	err := client.SendMessage(context.Background(), zapi.SendMessageInput{
		Phone:   "5511999998888",
		Message: "Olá!",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

// TestSendMessageAPIErrorInBody - 200 com erro no corpo também falha.
func TestSendMessageAPIErrorInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"error":{"message":"invalid phone","code":422}}`))
	}))
	defer server.Close()

	client := zapi.NewClient(server.URL, "instance-1", "token-abc")

	err := client.SendMessage(context.Background(), zapi.SendMessageInput{
		Phone:   "123",
		Message: "Olá!",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phone")
}

func TestSendMessageNotConfigured(t *testing.T) {
	client := zapi.NewClient("", "", "")

	err := client.SendMessage(context.Background(), zapi.SendMessageInput{
		Phone:   "5511999998888",
		Message: "Olá!",
	})

	assert.Error(t, err)
}
