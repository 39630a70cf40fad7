package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Options HTTP请求选项
type Options struct {
	// 超时时间，默认30秒
	Timeout time.Duration
	// 请求头
	Headers map[string]string
	// 上下文，用于取消请求
	Context context.Context
	// HTTP客户端，如果为nil则使用默认客户端
	Client *http.Client
}

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		Timeout: 30 * time.Second,
		Headers: make(map[string]string),
		Context: context.Background(),
	}
}

// WithTimeout 设置超时时间
func (o *Options) WithTimeout(timeout time.Duration) *Options {
	o.Timeout = timeout
	return o
}

// WithHeader 添加请求头
func (o *Options) WithHeader(key, value string) *Options {
	if o.Headers == nil {
		o.Headers = make(map[string]string)
	}
	o.Headers[key] = value
	return o
}

// WithContext 设置上下文
func (o *Options) WithContext(ctx context.Context) *Options {
	o.Context = ctx
	return o
}

// WithClient 设置HTTP客户端
func (o *Options) WithClient(client *http.Client) *Options {
	o.Client = client
	return o
}

// Response 已读取完毕的HTTP响应
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// OK 状态码是否为2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// MediaType 解析Content-Type，返回媒体类型和参数（如charset）
func (r *Response) MediaType() (string, map[string]string) {
	raw := r.Header.Get("Content-Type")
	if raw == "" {
		return "", nil
	}
	mediaType, params, err := mime.ParseMediaType(raw)
	if err != nil {
		// 不规范的Content-Type，取分号前的部分
		return strings.ToLower(strings.TrimSpace(strings.Split(raw, ";")[0])), nil
	}
	return strings.ToLower(mediaType), params
}

// ErrDecode 响应体无法解析为期望的JSON结构
var ErrDecode = errors.New("failed to unmarshal response body")

// StatusError 上游返回非2xx状态码
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.StatusCode, e.Body)
}

func resolveOptions(opts []*Options) *Options {
	if len(opts) > 0 && opts[0] != nil {
		options := opts[0]
		if options.Context == nil {
			options.Context = context.Background()
		}
		return options
	}
	return DefaultOptions()
}

// Do 执行请求并完整读取响应体，不检查状态码
func Do(method, rawURL string, query url.Values, reqBody io.Reader, opts ...*Options) (*Response, error) {
	options := resolveOptions(opts)

	client := options.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx := options.Context
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL = rawURL + sep + query.Encode()
	}

	// 创建请求
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// 设置自定义头部
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}

	// 发送请求
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// 读取响应体
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		URL:        rawURL,
	}, nil
}

// Get 发送GET请求的便捷方法，不检查状态码
func Get(rawURL string, query url.Values, opts ...*Options) (*Response, error) {
	return Do(http.MethodGet, rawURL, query, nil, opts...)
}

// DoJSONRequest 执行JSON请求，统一处理JSON编码/解码和HTTP请求
// 非2xx状态码返回 *StatusError
func DoJSONRequest(method, rawURL string, query url.Values, reqBody, respBody interface{}, opts ...*Options) error {
	options := resolveOptions(opts)

	// 处理请求体
	var reqReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqReader = bytes.NewBuffer(jsonData)
		options = options.WithHeader("Content-Type", "application/json")
	}
	options = options.WithHeader("Accept", "application/json")

	resp, err := Do(method, rawURL, query, reqReader, options)
	if err != nil {
		return err
	}

	// 检查HTTP状态码
	if !resp.OK() {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	// 解析响应体
	if respBody != nil {
		if err := json.Unmarshal(resp.Body, respBody); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	return nil
}

// GetJSON 发送GET JSON请求的便捷方法
func GetJSON(rawURL string, query url.Values, respBody interface{}, opts ...*Options) error {
	return DoJSONRequest(http.MethodGet, rawURL, query, nil, respBody, opts...)
}
