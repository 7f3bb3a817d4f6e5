package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"whatsapp-campaign/internal/config"

	"github.com/pkg/errors"
)

type Client struct {
	Config     *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{Config: cfg, HTTPClient: &http.Client{}}
}

// APIError is returned when the provider answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Status, string(e.Body))
}

// IsAPIError reports whether err was caused by a provider error response.
func IsAPIError(err error) bool {
	_, ok := errors.Cause(err).(*APIError)
	return ok
}

// --- Helper Functions ---

func (c *Client) sendRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := marshalBody(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	endpoint := strings.TrimRight(c.Config.APIBaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	req.Header.Set("Publicid", c.Config.APIPublicID)
	req.Header.Set("Secret", c.Config.APISecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: respBody}
	}

	return respBody, nil
}

// marshalBody passes raw JSON through untouched so proxied bodies reach the
// provider byte for byte.
func marshalBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(body)
	}
}

func rawResponse(resp []byte) json.RawMessage {
	if len(bytes.TrimSpace(resp)) == 0 {
		return json.RawMessage("null")
	}
	if !json.Valid(resp) {
		quoted, _ := json.Marshal(string(resp))
		return quoted
	}
	return json.RawMessage(resp)
}

// --- Messaging Methods ---

// SendMessage posts an arbitrary message body to /v1/messages and returns the
// provider response as raw JSON.
func (c *Client) SendMessage(ctx context.Context, body interface{}) (json.RawMessage, error) {
	resp, err := c.sendRequest(ctx, http.MethodPost, "/v1/messages", body)
	if err != nil {
		return nil, err
	}
	return rawResponse(resp), nil
}

// SendTemplate sends a formatted template content to a single contact.
func (c *Client) SendTemplate(ctx context.Context, contact string, content Content) (json.RawMessage, error) {
	msg := Message{
		Recipient: Recipient{
			Contact: contact,
			Channel: ChannelWhatsApp,
		},
		Content: content,
	}
	return c.SendMessage(ctx, msg)
}

// --- Template Management Methods ---

// GetTemplates looks templates up on the provider by name and language.
// Both filters are optional.
func (c *Client) GetTemplates(ctx context.Context, name, language string) (json.RawMessage, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}
	if language != "" {
		query.Set("language", language)
	}

	path := "/v1/whatsapp/message_templates"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.sendRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return rawResponse(resp), nil
}
