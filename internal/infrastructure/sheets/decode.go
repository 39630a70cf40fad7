package sheets

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// decodeText 将响应体转换为UTF-8文本
// 上游常声明错误的编码：只要原始字节是合法UTF-8就直接按UTF-8解读，
// 否则按声明的charset解码（未声明时按ISO-8859-1）
func decodeText(body []byte, declaredCharset string) (string, error) {
	if utf8.Valid(body) {
		return string(body), nil
	}

	if declaredCharset == "" {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
		if err != nil {
			return "", fmt.Errorf("failed to decode body as ISO-8859-1: %w", err)
		}
		return string(decoded), nil
	}

	enc, name := charset.Lookup(declaredCharset)
	if enc == nil {
		return "", fmt.Errorf("unsupported charset %q", declaredCharset)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode body as %s: %w", name, err)
	}
	return string(decoded), nil
}
