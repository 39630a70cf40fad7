package entities

// DriveFile 上游文件列表中的一条原始记录
type DriveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
}

// ImageRecord 通过图片过滤并成功提取序号的文件
type ImageRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Index       int    `json:"index"`
	DownloadURL string `json:"url"`
	ProxyURL    string `json:"proxy_url"`
	Modified    string `json:"modified"`
}

// ImageView 返回给前端的图片投影（不含index，index作为映射的键）
type ImageView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`
	Modified string `json:"modified"`
}

// View 生成前端投影
func (r ImageRecord) View() ImageView {
	return ImageView{
		ID:       r.ID,
		Name:     r.Name,
		URL:      r.DownloadURL,
		ProxyURL: r.ProxyURL,
		Modified: r.Modified,
	}
}
