package drive

import "github.com/easayliu/drive-exhibit-relay/internal/domain/entities"

// listFields 请求返回的字段
const listFields = "files(id,name,mimeType,modifiedTime)"

// FileListResponse files.list 响应
type FileListResponse struct {
	Files         []FileItem `json:"files"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// FileItem 文件项
type FileItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
}

func (f FileItem) toEntity() entities.DriveFile {
	return entities.DriveFile{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		ModifiedTime: f.ModifiedTime,
	}
}
