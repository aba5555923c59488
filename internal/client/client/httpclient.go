package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/softasistence/internal/server/dto"
)

const (
	loginPath = "/api/auth/login"
	mePath    = "/api/auth/me"
)

// HTTPClient calls the REST API.
type HTTPClient struct {
	r *resty.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPClient{r: r}
}

func (c *HTTPClient) Close() error {
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, in *dto.LoginRequest) (*dto.LoginData, error) {
	var ok dto.Envelope[*dto.LoginData]
	var fail dto.Envelope[any]

	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&ok).
		SetError(&fail).
		Post(loginPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), fail.Message)
	}
	if ok.Data == nil {
		return nil, &APIError{Kind: ErrServer, Message: "empty login response"}
	}
	return ok.Data, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*dto.Identity, error) {
	var ok dto.Envelope[dto.MeData]
	var fail dto.Envelope[any]

	resp, err := c.r.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&ok).
		SetError(&fail).
		Get(mePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), fail.Message)
	}
	return &ok.Data.User, nil
}

func statusError(code int, message string) error {
	var kind error
	switch {
	case code == http.StatusBadRequest:
		kind = ErrBadRequest
	case code == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case code == http.StatusForbidden:
		kind = ErrForbidden
	case code == http.StatusServiceUnavailable || code == http.StatusBadGateway:
		kind = ErrUnavailable
	default:
		kind = ErrServer
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return &APIError{Kind: kind, Message: message}
}
