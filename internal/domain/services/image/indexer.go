package image

import (
	"math"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

const imageMimePrefix = "image/"

// Indexer 图片过滤与排序 - 领域服务
// 只保留 image/* 文件，从文件名中提取第一段数字作为序号，按序号稳定排序
type Indexer struct {
	downloadBaseURL string
	proxyPath       string
}

// NewIndexer 创建图片索引器
// downloadBaseURL 如 https://drive.google.com/uc，proxyPath 如 /api/proxy-image
func NewIndexer(downloadBaseURL, proxyPath string) *Indexer {
	return &Indexer{
		downloadBaseURL: downloadBaseURL,
		proxyPath:       strings.TrimRight(proxyPath, "/"),
	}
}

// DownloadURL 文件的外部下载地址
func (i *Indexer) DownloadURL(fileID string) string {
	return DownloadURL(i.downloadBaseURL, fileID)
}

// ProxyURL 文件的同源代理路径
func (i *Indexer) ProxyURL(fileID string) string {
	return i.proxyPath + "/" + url.PathEscape(fileID)
}

// FilterAndIndex 过滤并排序，纯函数，不会失败
func (i *Indexer) FilterAndIndex(files []entities.DriveFile) []entities.ImageRecord {
	images := make([]entities.ImageRecord, 0, len(files))

	for _, file := range files {
		if !strings.HasPrefix(file.MimeType, imageMimePrefix) {
			logger.Debug("Non-image skipped", "name", file.Name, "mime_type", file.MimeType)
			continue
		}

		index, ok := ExtractIndex(file.Name)
		if !ok {
			logger.Debug("Image skipped (no number)", "name", file.Name)
			continue
		}

		images = append(images, entities.ImageRecord{
			ID:          file.ID,
			Name:        file.Name,
			Index:       index,
			DownloadURL: i.DownloadURL(file.ID),
			ProxyURL:    i.ProxyURL(file.ID),
			Modified:    file.ModifiedTime,
		})
		logger.Debug("Image matched", "name", file.Name, "index", index, "id", file.ID)
	}

	// 相同序号保持上游顺序
	sort.SliceStable(images, func(a, b int) bool {
		return images[a].Index < images[b].Index
	})

	return images
}

// ExtractIndex 提取文件名中第一段连续的十进制数字
// 任意Unicode十进制数字都算（如全角、阿拉伯-印度数字）
// 没有数字或数字超出int范围时返回 false
func ExtractIndex(name string) (int, bool) {
	index, found := 0, false
	for _, r := range name {
		if !unicode.IsDigit(r) {
			if found {
				break
			}
			continue
		}
		found = true

		d := digitValue(r)
		if index > (math.MaxInt-d)/10 {
			return 0, false
		}
		index = index*10 + d
	}
	return index, found
}

// digitValue 十进制数字字符的数值
// Unicode的Nd字符总是以0到9连续成组出现，按所在连续区间的偏移取模即可
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

// DownloadURL 构造 Drive 下载地址：{base}?id={id}&export=download
func DownloadURL(baseURL, fileID string) string {
	return baseURL + "?id=" + url.QueryEscape(fileID) + "&export=download"
}
