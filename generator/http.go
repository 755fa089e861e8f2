package generator

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	sendMessagePath  = "send-message"
	clearHistoryPath = "clear-history"
	defaultTimeout   = 60 * time.Second
	maxBodyBytes     = 1 << 20
)

// HTTPClient talks to a chat relay that answers GET requests with a small
// XML document: <response><success/><errorCode/><extra/></response>.
type HTTPClient struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient creates a client for the relay at baseURL. The user id scopes
// the relay's conversation history.
func NewHTTPClient(baseURL, userID string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("generator.http"),
	}
}

// SendPrompt implements Client.
func (c *HTTPClient) SendPrompt(ctx context.Context, prompt string) Response {
	q := url.Values{}
	q.Set("id", c.userID)
	q.Set("text", prompt)
	return c.get(ctx, sendMessagePath, q)
}

// ClearHistory implements HistoryClearer.
func (c *HTTPClient) ClearHistory(ctx context.Context) Response {
	q := url.Values{}
	q.Set("id", c.userID)
	return c.get(ctx, clearHistoryPath, q)
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) Response {
	status, body, err := c.do(ctx, c.baseURL+path+"?"+query.Encode())
	if err == nil && status == http.StatusNotFound {
		// Some relay deployments only route the trailing-slash form.
		status, body, err = c.do(ctx, c.baseURL+path+"/?"+query.Encode())
	}
	if err != nil {
		c.logger.Warn("generator request failed", zap.String("path", path), zap.Error(err))
		return failure(CodeLocalException, err.Error())
	}
	resp := parseReply(status, body)
	if !resp.Success {
		c.logger.Debug("generator reported failure",
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("error_code", resp.ErrorCode))
	}
	return resp
}

func (c *HTTPClient) do(ctx context.Context, target string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Accept", "application/xml")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, "", err
	}
	return res.StatusCode, string(raw), nil
}

type xmlReply struct {
	Success   string `xml:"success"`
	ErrorCode string `xml:"errorCode"`
	Extra     string `xml:"extra"`
}

// parseReply maps a relay reply onto Response. Replies that are not valid
// XML are still searched for the three tags.
func parseReply(status int, body string) Response {
	if strings.TrimSpace(body) == "" {
		return failure(CodeEmptyBody, "HTTP "+strconv.Itoa(status))
	}

	var r xmlReply
	if err := xml.Unmarshal([]byte(body), &r); err != nil || r == (xmlReply{}) {
		r = xmlReply{
			Success:   tagText(body, "success"),
			ErrorCode: tagText(body, "errorCode"),
			Extra:     tagText(body, "extra"),
		}
	}

	resp := Response{
		Success:   strings.EqualFold(strings.TrimSpace(r.Success), "true"),
		ErrorCode: strings.TrimSpace(r.ErrorCode),
		Body:      strings.TrimSpace(r.Extra),
	}
	if !resp.Success && status >= 400 && resp.ErrorCode == "" {
		resp.ErrorCode = codeHTTPPrefix + strconv.Itoa(status)
	}
	return resp
}

func tagText(doc, tag string) string {
	open, end := "<"+tag+">", "</"+tag+">"
	i := strings.Index(doc, open)
	if i < 0 {
		return ""
	}
	rest := doc[i+len(open):]
	j := strings.Index(rest, end)
	if j < 0 {
		return ""
	}
	return rest[:j]
}
