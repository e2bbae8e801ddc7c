package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindQuota     ErrorKind = "quota"
	KindMalformed ErrorKind = "malformed"
	KindTransport ErrorKind = "transport"
	KindUpstream  ErrorKind = "upstream"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("no response content")

// ServiceError is a failed model call. Status is the HTTP status when the
// provider reported one.
type ServiceError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model service %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("model service %s: %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Transient reports whether one more attempt could succeed.
func (e *ServiceError) Transient() bool {
	switch e.Kind {
	case KindTimeout, KindTransport:
		return true
	case KindUpstream:
		return e.Status == 0 || e.Status >= http.StatusInternalServerError
	}
	return false
}

// Classify maps provider SDK errors onto a ServiceError.
func Classify(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Kind: KindTimeout, Err: err}
	}
	if errors.Is(err, ErrEmptyResponse) {
		return &ServiceError{Kind: KindMalformed, Err: err}
	}

	var oaAPI *openai.APIError
	if errors.As(err, &oaAPI) {
		return fromStatus(oaAPI.HTTPStatusCode, err)
	}
	var oaReq *openai.RequestError
	if errors.As(err, &oaReq) {
		return fromStatus(oaReq.HTTPStatusCode, err)
	}

	var anAPI *anthropic.APIError
	if errors.As(err, &anAPI) {
		switch anAPI.Type {
		case anthropic.ErrTypeRateLimit:
			return &ServiceError{Kind: KindQuota, Status: http.StatusTooManyRequests, Err: err}
		case anthropic.ErrTypeOverloaded, anthropic.ErrTypeApi:
			return &ServiceError{Kind: KindUpstream, Status: http.StatusServiceUnavailable, Err: err}
		default:
			return &ServiceError{Kind: KindUpstream, Status: http.StatusBadRequest, Err: err}
		}
	}
	var anReq *anthropic.RequestError
	if errors.As(err, &anReq) {
		return fromStatus(anReq.StatusCode, err)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return fromStatus(gErr.Code, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ServiceError{Kind: KindTimeout, Err: err}
	}

	return &ServiceError{Kind: KindTransport, Err: err}
}

func fromStatus(status int, err error) *ServiceError {
	switch {
	case status == http.StatusTooManyRequests:
		return &ServiceError{Kind: KindQuota, Status: status, Err: err}
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return &ServiceError{Kind: KindTimeout, Status: status, Err: err}
	case status == 0:
		return &ServiceError{Kind: KindTransport, Err: err}
	default:
		return &ServiceError{Kind: KindUpstream, Status: status, Err: err}
	}
}
