package sheets

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL Google Sheets 基础地址
const DefaultBaseURL = "https://docs.google.com/spreadsheets"

// Format 一种公开导出CSV的URL形式
type Format struct {
	Name  string
	build func(baseURL, sheetID string) string
}

// URL 构造该形式下的完整地址
func (f Format) URL(baseURL, sheetID string) string {
	return f.build(baseURL, url.PathEscape(sheetID))
}

// DefaultFormats 按顺序尝试的导出形式
var DefaultFormats = []Format{
	{
		Name: "published",
		build: func(baseURL, id string) string {
			return fmt.Sprintf("%s/d/e/%s/pub?output=csv", baseURL, id)
		},
	},
	{
		Name: "export",
		build: func(baseURL, id string) string {
			return fmt.Sprintf("%s/d/%s/export?format=csv&gid=0", baseURL, id)
		},
	},
	{
		Name: "published-alt",
		build: func(baseURL, id string) string {
			return fmt.Sprintf("%s/d/%s/pub?output=csv", baseURL, id)
		},
	},
	{
		Name: "gviz",
		build: func(baseURL, id string) string {
			return fmt.Sprintf("%s/d/%s/gviz/tq?tqx=out:csv", baseURL, id)
		},
	},
}
