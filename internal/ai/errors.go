package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
)

// ClassifyError maps a provider failure onto the AI and auth error
// categories. status is the HTTP status reported by the SDK, or 0 when the
// SDK did not expose one.
func ClassifyError(provider string, status int, err error) error {
	if err == nil {
		return nil
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var classified *domainErrors.AppError
	errMsg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		classified = domainErrors.ErrGenerationTimeout
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		classified = domainErrors.ErrAPIKeyInvalid
	case status == http.StatusTooManyRequests:
		classified = domainErrors.ErrQuotaExceeded
	case status == 0 && (strings.Contains(errMsg, "quota") ||
		strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "resource exhausted")):
		classified = domainErrors.ErrQuotaExceeded
	case status == 0 && (strings.Contains(errMsg, "api key") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "authentication")):
		classified = domainErrors.ErrAPIKeyInvalid
	default:
		classified = domainErrors.ErrAIGeneration
	}

	classified = classified.WithContext("provider", provider)
	if status != 0 {
		classified = classified.WithContext("status", status)
	}
	return classified.WithError(err)
}
