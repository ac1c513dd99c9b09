package ionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TWRT/arrival-location/internal/client"
)

const (
	invokeIDO    = "IONAPIMethods"
	invokeMethod = "InvokeIONAPIMethod"

	minTimeoutMargin = 500 * time.Millisecond
)

type IONAPIClient struct {
	baseUrl    string
	token      string
	site       string
	httpClient *http.Client
}

// NewIONAPIClient takes the timeout handed to the backend with each invoke.
// The HTTP client waits a little longer so the backend's own timeout error
// still reaches the caller.
func NewIONAPIClient(baseUrl, token, site string, ionTimeout time.Duration) *IONAPIClient {
	return &IONAPIClient{
		baseUrl:    baseUrl,
		token:      token,
		site:       site,
		httpClient: &http.Client{Timeout: httpTimeout(ionTimeout)},
	}
}

// httpTimeout adds a tenth of the ION timeout, at least minTimeoutMargin.
func httpTimeout(ionTimeout time.Duration) time.Duration {
	margin := ionTimeout / 10
	if margin < minTimeoutMargin {
		margin = minTimeoutMargin
	}
	return ionTimeout + margin
}

func (c *IONAPIClient) InvokeIONAPIMethod(ctx context.Context, in client.InvokeRequest) (*client.InvokeResponse, error) {
	args := []*string{
		&in.SSO,
		&in.ServerID,
		&in.SuiteContext,
		&in.HTTPMethod,
		&in.MethodName,
		&in.Parameters,
		&in.ContentType,
		&in.Timeout,
		nil, // ResponseCode
		nil, // ResponseContent
		nil, // ResponseHeaders
		nil, // ResponseInfobar
	}

	body, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal invoke arguments (ionapi): %w", err)
	}

	url := c.baseUrl + "/IDORequestService/ido/invoke/" + invokeIDO + "?method=" + invokeMethod

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build request (ionapi): %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)
	req.Header.Set("X-Infor-MongooseConfig", c.site)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke %s (ionapi): %w", invokeMethod, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read error body (ionapi): %w", err)
		}

		var mgErr MongooseError
		if err := json.Unmarshal(errorBody, &mgErr); err != nil || mgErr.Message == "" {
			return nil, fmt.Errorf("error status (ionapi): %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("Mongoose error: %s", mgErr.Message)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (ionapi): %w", err)
	}

	var invokeResp InvokeMethodResponse
	if err := json.Unmarshal(respBody, &invokeResp); err != nil {
		return nil, fmt.Errorf("parse invoke response (ionapi): %w", err)
	}

	params := make([]string, len(invokeResp.Parameters))
	for i, p := range invokeResp.Parameters {
		params[i] = string(p)
	}

	return &client.InvokeResponse{
		Failed:     isStdError(invokeResp),
		Message:    string(invokeResp.Message),
		Parameters: params,
	}, nil
}

// isStdError mirrors the backend's notion of a failed method: a non-zero
// return value or an error message.
func isStdError(r InvokeMethodResponse) bool {
	if r.Message != "" {
		return true
	}
	return r.ReturnValue != "" && r.ReturnValue != "0"
}
