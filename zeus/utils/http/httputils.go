// zeus/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %d - %s", e.StatusCode, e.Body)
}

func PostJSON(ctx context.Context, url string, body interface{}, resp interface{}) error {
	return PostJSONWithAuth(ctx, url, "", body, resp)
}

// PostJSONWithAuth posts body as JSON with an optional bearer token and
// decodes the response into resp when it is non-nil.
func PostJSONWithAuth(ctx context.Context, url, apiKey string, body interface{}, resp interface{}) error {
	data, _, err := PostForBytes(ctx, url, apiKey, body)
	if err != nil {
		return err
	}
	if resp != nil {
		if err := json.Unmarshal(data, resp); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// PostForBytes posts body as JSON and returns the raw response body and its
// content type.
func PostForBytes(ctx context.Context, url, apiKey string, body interface{}) ([]byte, string, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	status, contentType, data, err := PostRaw(ctx, url, apiKey, jsonBody)
	if err != nil {
		return nil, "", err
	}
	if status < 200 || status >= 300 {
		return nil, "", &StatusError{StatusCode: status, Body: string(data)}
	}
	return data, contentType, nil
}

// PostRaw sends an already encoded JSON body and hands back whatever the
// upstream answered, without judging the status.
func PostRaw(ctx context.Context, url, apiKey string, jsonBody []byte) (int, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return 0, "", nil, err
	}
	return r.StatusCode, r.Header.Get("Content-Type"), data, nil
}
