package contracts

import "context"

// ImagePayload 代理返回的图片内容
type ImagePayload struct {
	Body        []byte
	ContentType string
}

// ImageProxyService 同源图片代理
type ImageProxyService interface {
	Fetch(ctx context.Context, fileID string) (*ImagePayload, error)
}
