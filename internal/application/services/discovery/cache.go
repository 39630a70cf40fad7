package discovery

import (
	"sync"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
)

// DefaultCacheTTL 缓存有效期
const DefaultCacheTTL = 30 * time.Second

// cacheEntry 单槽缓存内容，三个字段总是一起替换
type cacheEntry struct {
	data      []entities.ImageRecord
	timestamp time.Time
	folderID  string
	stored    bool
}

// Cache 进程级单槽TTL缓存
// 只保存最后一次查询的文件夹，查询其他文件夹即视为未命中
type Cache struct {
	mu    sync.Mutex
	entry cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewCache 创建缓存
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl: ttl,
		now: time.Now,
	}
}

// SetClock 替换时钟（测试用）
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// TTL 返回缓存有效期
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Lookup 文件夹ID一致且未过期时返回缓存的图片列表
func (c *Cache) Lookup(folderID string) ([]entities.ImageRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.entry.stored || c.entry.folderID != folderID {
		return nil, false
	}
	if c.now().Sub(c.entry.timestamp) >= c.ttl {
		return nil, false
	}
	return c.entry.data, true
}

// Store 整体覆盖缓存槽
func (c *Cache) Store(folderID string, images []entities.ImageRecord) {
	data := make([]entities.ImageRecord, len(images))
	copy(data, images)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = cacheEntry{
		data:      data,
		timestamp: c.now(),
		folderID:  folderID,
		stored:    true,
	}
}

// Entries 已填充的缓存字段数（data非空、timestamp、folder_id），用于状态接口
func (c *Cache) Entries() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	if len(c.entry.data) > 0 {
		count++
	}
	if !c.entry.timestamp.IsZero() {
		count++
	}
	if c.entry.folderID != "" {
		count++
	}
	return count
}
