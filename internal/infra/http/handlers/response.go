package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeUseCaseError mapeia a taxonomia de erros para HTTP:
// validação → 400, não encontrado → 404, regra de negócio → 422,
// falha técnica → 500 com mensagem genérica.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusUnprocessableEntity
		switch domainErr.Code {
		case "VALIDATION_ERROR", "INVALID_STATUS", "INVALID_LEAD":
			status = http.StatusBadRequest
		case "LEAD_NOT_FOUND":
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{
			"code":  domainErr.Code,
			"error": domainErr.Message,
		})
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"code":  techErr.Code,
			"error": "algo deu errado, tente novamente",
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "algo deu errado, tente novamente",
	})
}
