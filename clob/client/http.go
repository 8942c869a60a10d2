package client

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/polytrade/pkg/logger"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
)

// httpClient executes requests against a base host with bounded retry.
//
// Only transport-level failures (connection, timeout) are retried, with
// 2^attempt seconds between attempts. A non-2xx response is classified
// immediately as a *RequestError and never retried. Bodies are passed in as
// already-serialized strings so the bytes that were signed are the bytes
// transmitted.
type httpClient struct {
	rc         *resty.Client
	retryCount int
	log        *logrus.Entry

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func newHTTPClient(host string, timeout time.Duration, retryCount int) *httpClient {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if retryCount <= 0 {
		retryCount = defaultRetryCount
	}
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "*/*").
		SetHeader("User-Agent", "polytrade-clob")

	return &httpClient{
		rc:         rc,
		retryCount: retryCount,
		log:        logger.WithField("component", "http"),
		sleep:      time.Sleep,
	}
}

// do executes one logical request. body must be the exact serialized string
// any request HMAC was computed over; out, when non-nil, receives the parsed
// JSON response. An empty successful body leaves out untouched.
func (h *httpClient) do(ctx context.Context, method, path string, headers map[string]string, params map[string]string, body string, out any) error {
	log := h.log.WithFields(logrus.Fields{
		"req":    uuid.NewString(),
		"method": method,
		"path":   path,
	})

	var lastErr error
	for attempt := 0; attempt < h.retryCount; attempt++ {
		if attempt > 0 {
			// 1s, 2s, 4s, ...
			h.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}

		req := h.rc.R().
			SetContext(ctx).
			SetHeaders(headers).
			SetQueryParams(params)
		if body != "" {
			req.SetHeader("Content-Type", "application/json")
			req.SetBody(body)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			// Transport failure: retry.
			lastErr = err
			log.WithField("attempt", attempt+1).Debugf("transport error: %v", err)
			continue
		}

		if !resp.IsSuccess() {
			log.WithField("status", resp.StatusCode()).Debug("http error")
			return &RequestError{Status: resp.StatusCode(), Body: string(resp.Body())}
		}

		log.WithField("status", resp.StatusCode()).Debug("request ok")
		if out == nil || len(resp.Body()) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return errors.Wrapf(err, "parse response of %s %s", method, path)
		}
		return nil
	}

	return &RequestError{
		Status: 0,
		Body:   errors.Wrapf(lastErr, "request failed after %d attempts", h.retryCount).Error(),
	}
}
