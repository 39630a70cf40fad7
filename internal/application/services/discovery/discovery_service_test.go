package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
	"github.com/easayliu/drive-exhibit-relay/internal/domain/services/image"
	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
)

type fakeLister struct {
	mu    sync.Mutex
	calls map[string]int
	files map[string][]entities.DriveFile
	err   error
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		calls: make(map[string]int),
		files: make(map[string][]entities.DriveFile),
	}
}

func (f *fakeLister) ListFiles(ctx context.Context, folderID string) ([]entities.DriveFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[folderID]++
	if f.err != nil {
		return nil, f.err
	}
	return f.files[folderID], nil
}

func (f *fakeLister) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type fakeNotifier struct {
	operations []string
	ids        []string
}

func (f *fakeNotifier) NotifyUpstreamFailure(operation, resourceID string, err error) {
	f.operations = append(f.operations, operation)
	f.ids = append(f.ids, resourceID)
}

func newTestService(lister *fakeLister, notifier *fakeNotifier, clock *fakeClock) *Service {
	cache := NewCache(30 * time.Second)
	cache.SetClock(clock.Now)
	indexer := image.NewIndexer("https://drive.google.com/uc", "/api/proxy-image")
	var n contracts.AlertNotifier
	if notifier != nil {
		n = notifier
	}
	svc := NewService(cache, lister, indexer, n)
	svc.SetClock(clock.Now)
	return svc
}

func imageFile(id, name string) entities.DriveFile {
	return entities.DriveFile{ID: id, Name: name, MimeType: "image/jpeg", ModifiedTime: "2024-01-01T00:00:00Z"}
}

func TestDiscover_CacheHit(t *testing.T) {
	lister := newFakeLister()
	lister.files["f"] = []entities.DriveFile{imageFile("a", "1.jpg"), imageFile("b", "2.jpg")}
	clock := newClock()
	svc := newTestService(lister, nil, clock)

	first, err := svc.Discover(context.Background(), "f")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	clock.Advance(10 * time.Second)
	second, err := svc.Discover(context.Background(), "f")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if lister.calls["f"] != 1 {
		t.Errorf("upstream calls = %d, want 1", lister.calls["f"])
	}
	if len(first.Images) != 2 || len(second.Images) != 2 {
		t.Fatalf("images = %d/%d, want 2", len(first.Images), len(second.Images))
	}
	for k, v := range first.Images {
		if second.Images[k] != v {
			t.Errorf("images[%d] differ between calls: %+v vs %+v", k, v, second.Images[k])
		}
	}
	if !second.Timestamp.Equal(clock.now) {
		t.Errorf("cache hit should still be stamped with now, got %v", second.Timestamp)
	}
	if !second.Success || second.FolderID != "f" || second.TotalFound != 2 {
		t.Errorf("unexpected result: %+v", second)
	}
}

func TestDiscover_TTLExpiry(t *testing.T) {
	lister := newFakeLister()
	lister.files["f"] = []entities.DriveFile{imageFile("a", "1.jpg")}
	clock := newClock()
	svc := newTestService(lister, nil, clock)

	svc.Discover(context.Background(), "f")
	clock.Advance(31 * time.Second)
	svc.Discover(context.Background(), "f")

	if lister.calls["f"] != 2 {
		t.Errorf("upstream calls = %d, want 2 after TTL expiry", lister.calls["f"])
	}
}

func TestDiscover_SingleSlotEviction(t *testing.T) {
	lister := newFakeLister()
	lister.files["f1"] = []entities.DriveFile{imageFile("a", "1.jpg")}
	lister.files["f2"] = []entities.DriveFile{imageFile("b", "1.jpg")}
	clock := newClock()
	svc := newTestService(lister, nil, clock)

	for _, folder := range []string{"f1", "f2", "f1"} {
		if _, err := svc.Discover(context.Background(), folder); err != nil {
			t.Fatalf("Discover(%s) error = %v", folder, err)
		}
		clock.Advance(time.Second)
	}

	if lister.calls["f1"] != 2 {
		t.Errorf("f1 upstream calls = %d, want 2", lister.calls["f1"])
	}
	if lister.calls["f2"] != 1 {
		t.Errorf("f2 upstream calls = %d, want 1", lister.calls["f2"])
	}
}

func TestDiscover_EmptyFolderID(t *testing.T) {
	lister := newFakeLister()
	svc := newTestService(lister, nil, newClock())

	_, err := svc.Discover(context.Background(), "")
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if lister.total() != 0 {
		t.Errorf("upstream should not be called, calls = %d", lister.total())
	}
	if svc.Cache().Entries() != 0 {
		t.Error("cache should not be touched")
	}
}

func TestDiscover_IndexCollapseLaterWins(t *testing.T) {
	lister := newFakeLister()
	lister.files["f"] = []entities.DriveFile{
		imageFile("A", "photo_3_first.jpg"),
		imageFile("x", "1.jpg"),
		imageFile("B", "photo_3_second.jpg"),
	}
	svc := newTestService(lister, nil, newClock())

	result, err := svc.Discover(context.Background(), "f")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := result.Images[3].ID; got != "B" {
		t.Errorf("images[3].ID = %q, want B", got)
	}
	if result.TotalFound != 3 {
		t.Errorf("TotalFound = %d, want 3 (counted before collapse)", result.TotalFound)
	}
	if len(result.Images) != 2 {
		t.Errorf("len(Images) = %d, want 2", len(result.Images))
	}
	want := entities.ImageView{
		ID:       "B",
		Name:     "photo_3_second.jpg",
		URL:      "https://drive.google.com/uc?id=B&export=download",
		ProxyURL: "/api/proxy-image/B",
		Modified: "2024-01-01T00:00:00Z",
	}
	if result.Images[3] != want {
		t.Errorf("images[3] = %+v, want %+v", result.Images[3], want)
	}
}

func TestDiscover_UpstreamError(t *testing.T) {
	lister := newFakeLister()
	lister.err = apperrors.NewStatusError("list drive files", 403, "forbidden")
	notifier := &fakeNotifier{}
	svc := newTestService(lister, notifier, newClock())

	_, err := svc.Discover(context.Background(), "f")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), MsgFetchFailed) {
		t.Errorf("error = %v, want %q", err, MsgFetchFailed)
	}
	if upstreamErr, ok := apperrors.AsUpstream(err); !ok || upstreamErr.StatusCode != 403 {
		t.Errorf("upstream error should be preserved, got %v", err)
	}
	if len(notifier.ids) != 1 || notifier.ids[0] != "f" || notifier.operations[0] != "discover" {
		t.Errorf("notifier calls = %v %v", notifier.operations, notifier.ids)
	}
	if svc.Cache().Entries() != 0 {
		t.Error("failed fetch must not populate the cache")
	}

	// 不重试：第二次请求再调用一次上游
	svc.Discover(context.Background(), "f")
	if lister.calls["f"] != 2 {
		t.Errorf("upstream calls = %d, want 2", lister.calls["f"])
	}
}

func TestDiscover_ConcurrentFoldersNeverMix(t *testing.T) {
	lister := newFakeLister()
	for _, folder := range []string{"f1", "f2", "f3"} {
		for i := 1; i <= 5; i++ {
			lister.files[folder] = append(lister.files[folder], imageFile(fmt.Sprintf("%s-%d", folder, i), fmt.Sprintf("%d.jpg", i)))
		}
	}
	svc := newTestService(lister, nil, newClock())

	var wg sync.WaitGroup
	errs := make(chan error, 300)
	for i := 0; i < 300; i++ {
		folder := fmt.Sprintf("f%d", i%3+1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Discover(context.Background(), folder)
			if err != nil {
				errs <- err
				return
			}
			for _, view := range result.Images {
				if !strings.HasPrefix(view.ID, folder+"-") {
					errs <- fmt.Errorf("folder %s got image %s", folder, view.ID)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
