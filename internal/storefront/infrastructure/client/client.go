// Package client 实现目录后端的实体网关。
// 所有响应在这里统一归一化：要么得到规范形状，要么得到类型化解析失败，
// 形状嗅探不允许泄漏到上层组合逻辑。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"github.com/wyfcoding/marketstore/pkg/metrics"
)

// Client 目录后端 HTTP 客户端，各实体网关共享
type Client struct {
	baseURL string
	httpCli *http.Client
	metrics *metrics.Metrics
}

// New 创建目录后端客户端
func New(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpCli: &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// envelope 上游响应的统一信封。success 或 data 缺失一律按失败处理，不做部分解析。
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()
	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.Inc()
	}

	resp, err := c.httpCli.Do(req)
	if c.metrics != nil {
		c.metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countError()
		return fmt.Errorf("request %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.countError()
		return &domain.UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countError()
		return fmt.Errorf("read %s response failed: %w", endpoint, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.countError()
		return &domain.ParseError{Endpoint: endpoint, Reason: "body is not a JSON object"}
	}
	if env.Success == nil {
		c.countError()
		return &domain.ParseError{Endpoint: endpoint, Reason: "missing success indicator"}
	}
	if !*env.Success {
		c.countError()
		return &domain.ParseError{Endpoint: endpoint, Reason: "success=false: " + env.Message}
	}
	if len(env.Data) == 0 {
		c.countError()
		return &domain.ParseError{Endpoint: endpoint, Reason: "missing data field"}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.countError()
		return &domain.ParseError{Endpoint: endpoint, Reason: "data has unexpected shape"}
	}
	return nil
}

func (c *Client) countError() {
	if c.metrics != nil {
		c.metrics.UpstreamErrorsTotal.Inc()
	}
}

func idsQuery(ids []string) url.Values {
	q := url.Values{}
	for _, id := range ids {
		q.Add("ids", id)
	}
	return q
}
