package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type NetworkController struct {
	BaseUrl string
	Timeout time.Duration

	client *http.Client
}

func (nc *NetworkController) httpClient() *http.Client {
	if nc.client == nil {
		timeout := nc.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		nc.client = &http.Client{Timeout: timeout}
	}
	return nc.client
}

func (nc *NetworkController) Post(ctx context.Context, path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		payload = bytes.NewReader(encoded)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", nc.BaseUrl, path), payload)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	res, err := nc.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()
	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &response, &res.StatusCode, nil
}
