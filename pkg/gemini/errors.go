package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/dskvich/oracai/pkg/domain"
)

var errEmptyResponse = errors.New("no completion response from API")

func classify(err error) *domain.GenerationError {
	return &domain.GenerationError{Kind: kindOf(err), Cause: err}
}

func kindOf(err error) domain.GenerationErrorKind {
	if errors.Is(err, errEmptyResponse) {
		return domain.GenerationErrorMalformed
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		// Gemini answers an invalid key with 400 INVALID_ARGUMENT.
		if apiErr.HTTPStatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key") {
			return domain.GenerationErrorAuth
		}
		return kindOfStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindOfStatus(reqErr.HTTPStatusCode)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domain.GenerationErrorMalformed
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return domain.GenerationErrorNetwork
	}

	return domain.GenerationErrorUpstream
}

func kindOfStatus(status int) domain.GenerationErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.GenerationErrorAuth
	case http.StatusTooManyRequests:
		return domain.GenerationErrorQuota
	default:
		return domain.GenerationErrorUpstream
	}
}
