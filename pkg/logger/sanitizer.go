package logger

import (
	"errors"
	"regexp"
	"strings"
)

// MaskToken 脱敏token字符串
// 规则:
//   - 空字符串返回空
//   - 长度<8: 返回 "***"
//   - 长度>=8: 保留前4后4,中间用星号替换
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	length := len(token)
	if length < 8 {
		return "***"
	}

	// 保留前4位和后4位
	maskedLength := length - 8
	return token[:4] + strings.Repeat("*", maskedLength) + token[length-4:]
}

// SanitizeValue 智能脱敏:根据键名判断是否需要脱敏
// 会自动识别包含敏感关键字的键名并脱敏其值
func SanitizeValue(key string, value interface{}) interface{} {
	if IsSensitiveKey(key) {
		// 字符串使用MaskToken脱敏,其他类型统一返回掩码
		if strVal, ok := value.(string); ok {
			return MaskToken(strVal)
		}
		return "***MASKED***"
	}

	if strVal, ok := value.(string); ok {
		return SanitizeString(strVal)
	}

	// 错误信息中可能携带带key的URL
	if err, ok := value.(error); ok && err != nil {
		msg := err.Error()
		if sanitized := SanitizeString(msg); sanitized != msg {
			return errors.New(sanitized)
		}
	}

	return value
}

// SanitizeArgs 批量脱敏slog日志参数
// slog使用键值对格式: key1, value1, key2, value2, ...
// 此函数会检查每个key,如果是敏感字段则脱敏对应的value
func SanitizeArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))

	for i := 0; i < len(args); i += 2 {
		// 复制key
		result[i] = args[i]

		// 处理value
		if i+1 < len(args) {
			key, ok := args[i].(string)
			if ok {
				// 如果key是字符串,根据key判断是否需要脱敏value
				result[i+1] = SanitizeValue(key, args[i+1])
			} else {
				// key不是字符串,直接复制value
				result[i+1] = args[i+1]
			}
		}
	}

	return result
}

// sensitivePatterns 字符串中常见敏感信息的匹配规则
// 上游请求失败时 net/http 的错误信息会带上完整URL（包含 ?key=...），必须在写日志前处理
var sensitivePatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-._~+/]+=*`), "Bearer ***TOKEN***"},
	{regexp.MustCompile(`(?i)([?&](?:key|api_?key|access_token|token)=)[^&\s"']+`), "${1}***"},
	{regexp.MustCompile(`(?i)\b(api[_-]?key|apikey)\s*[:=]\s*[A-Za-z0-9\-_]+`), "${1}=***"},
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[:=]\s*[^\s,}\]"']+`), "${1}=***"},
}

// SanitizeString 脱敏字符串中可能包含的敏感信息
// 用于脱敏完整的字符串内容(如日志消息本身、错误信息)
func SanitizeString(s string) string {
	result := s
	for _, p := range sensitivePatterns {
		result = p.re.ReplaceAllString(result, p.replacement)
	}
	return result
}

// sensitiveKeys 需要脱敏的字段关键字
var sensitiveKeys = []string{
	"token", "password", "passwd", "pwd",
	"secret", "api_key", "apikey", "api-key",
	"authorization", "auth",
}

// IsSensitiveKey 判断键名是否为敏感字段
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			return true
		}
	}
	return false
}
