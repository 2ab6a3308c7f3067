package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/handiism/bandcamp-collector/internal/config"
	"github.com/handiism/bandcamp-collector/internal/model"
)

// testSettings returns settings rooted in a temp dir with the
// post-processing extras switched off.
func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.DownloadsPath = filepath.Join(t.TempDir(), "{artist}")
	s.SaveCoverArt = false
	s.ModifyTags = false
	return s
}

// newTestManager builds a Manager over a fixed item list, bypassing
// collection resolution.
func newTestManager(settings *config.Settings, items []*model.Item) *Manager {
	m := NewManager(settings, nil, nil)
	m.items = items
	atomic.StoreInt32(&m.totalItems, int32(len(items)))
	return m
}

func testItem(settings *config.Settings, artist, title, url string, size int64) *model.Item {
	return model.NewItem(artist, title, settings.Format, url, size, model.KindAlbum, settings.ToPathConfig())
}

func TestManager_Run_Downloads(t *testing.T) {
	content := make([]byte, 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	settings := testSettings(t)
	item := testItem(settings, "X", "Y", srv.URL, 1000)
	m := newTestManager(settings, []*model.Item{item})

	outcomes, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	if outcomes[0].Status != model.StatusDownloaded {
		t.Fatalf("Status = %v (%s), want Downloaded", outcomes[0].Status, outcomes[0].Detail)
	}

	info, err := os.Stat(item.Path)
	if err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	if info.Size() != 1000 {
		t.Errorf("file size = %d, want 1000", info.Size())
	}
}

func TestManager_Run_SkipsExisting(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer srv.Close()

	settings := testSettings(t)
	item := testItem(settings, "X", "Y", srv.URL, 1000)

	if err := os.MkdirAll(filepath.Dir(item.Path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(item.Path, make([]byte, 1000), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(settings, []*model.Item{item})
	outcomes, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if outcomes[0].Status != model.StatusSkipped {
		t.Errorf("Status = %v, want Skipped", outcomes[0].Status)
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("server saw %d requests, want 0 (no network call for satisfied items)", n)
	}
}

func TestManager_Run_RedownloadsWrongSize(t *testing.T) {
	content := make([]byte, 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	settings := testSettings(t)
	item := testItem(settings, "X", "Y", srv.URL, 1000)

	if err := os.MkdirAll(filepath.Dir(item.Path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(item.Path, make([]byte, 999), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(settings, []*model.Item{item})
	outcomes, _ := m.Run(context.Background())

	if outcomes[0].Status != model.StatusDownloaded {
		t.Fatalf("Status = %v, want Downloaded", outcomes[0].Status)
	}
	info, err := os.Stat(item.Path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 1000 {
		t.Errorf("file size = %d, want 1000 after replacement", info.Size())
	}
}

func TestManager_Run_ForceRedownloads(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write(make([]byte, 1000))
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.Force = true
	item := testItem(settings, "X", "Y", srv.URL, 1000)

	if err := os.MkdirAll(filepath.Dir(item.Path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(item.Path, make([]byte, 1000), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(settings, []*model.Item{item})
	outcomes, _ := m.Run(context.Background())

	if outcomes[0].Status != model.StatusDownloaded {
		t.Errorf("Status = %v, want Downloaded under force", outcomes[0].Status)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestManager_Run_FailureIsolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		w.Write(make([]byte, 500))
	}))
	defer srv.Close()

	settings := testSettings(t)
	bad := testItem(settings, "X", "Bad", srv.URL+"/bad", 500)
	good := testItem(settings, "X", "Good", srv.URL+"/good", 500)

	m := newTestManager(settings, []*model.Item{bad, good})
	outcomes, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if outcomes[0].Status != model.StatusFailed {
		t.Errorf("bad item Status = %v, want Failed", outcomes[0].Status)
	}
	if outcomes[0].Detail == "" {
		t.Error("failed outcome should carry detail")
	}
	if outcomes[1].Status != model.StatusDownloaded {
		t.Errorf("good item Status = %v, want Downloaded", outcomes[1].Status)
	}

	// The failed item must leave nothing at its destination.
	if _, err := os.Stat(bad.Path); !os.IsNotExist(err) {
		t.Error("failed item left a file at its destination path")
	}

	if !m.Reporter().HasFailures() {
		t.Error("reporter should record the failure")
	}
}

func TestManager_Run_DirectoryConflictFails(t *testing.T) {
	settings := testSettings(t)
	item := testItem(settings, "X", "Y", "http://unused.invalid", 1000)

	if err := os.MkdirAll(item.Path, 0755); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(settings, []*model.Item{item})
	outcomes, _ := m.Run(context.Background())

	if outcomes[0].Status != model.StatusFailed {
		t.Errorf("Status = %v, want Failed for directory conflict", outcomes[0].Status)
	}
	if !strings.Contains(outcomes[0].Detail, ErrDestinationConflict.Error()) {
		t.Errorf("Detail = %q, want the conflict cause", outcomes[0].Detail)
	}
}

func TestManager_Run_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 700))
	}))
	defer srv.Close()

	settings := testSettings(t)
	items := []*model.Item{
		testItem(settings, "A", "One", srv.URL+"/1", 700),
		testItem(settings, "B", "Two", srv.URL+"/2", 700),
	}

	first := newTestManager(settings, items)
	outcomes, err := first.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	for _, o := range outcomes {
		if o.Status != model.StatusDownloaded {
			t.Fatalf("first run: %s = %v, want Downloaded", o.Item.Name(), o.Status)
		}
	}

	second := newTestManager(settings, items)
	outcomes, err = second.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	for _, o := range outcomes {
		if o.Status != model.StatusSkipped {
			t.Errorf("second run: %s = %v, want Skipped", o.Item.Name(), o.Status)
		}
	}
}

func TestManager_Run_InvalidWorkersRejectedBeforeRun(t *testing.T) {
	for _, workers := range []int{0, -1, 33} {
		settings := testSettings(t)
		settings.Workers = workers

		m := newTestManager(settings, nil)
		if _, err := m.Run(context.Background()); err == nil {
			t.Errorf("workers=%d: expected error before run begins", workers)
		}
	}
}

func TestManager_Run_WorkerLimit(t *testing.T) {
	const workers = 4
	const itemCount = 20

	var inFlight, maxInFlight int32
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if cur > maxInFlight {
			maxInFlight = cur
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.Workers = workers

	items := make([]*model.Item, itemCount)
	for i := range items {
		items[i] = testItem(settings, "A", string(rune('a'+i)), srv.URL, -1)
	}

	m := newTestManager(settings, items)
	outcomes, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != itemCount {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), itemCount)
	}

	mu.Lock()
	got := maxInFlight
	mu.Unlock()
	if got > workers {
		t.Errorf("max in-flight transfers = %d, want <= %d", got, workers)
	}
	if got == 0 {
		t.Error("no transfers observed")
	}
}

func TestManager_Run_SequentialMode(t *testing.T) {
	var inFlight, maxInFlight int32
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if cur > maxInFlight {
			maxInFlight = cur
		}
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.Workers = 1

	items := []*model.Item{
		testItem(settings, "A", "One", srv.URL+"/1", -1),
		testItem(settings, "A", "Two", srv.URL+"/2", -1),
		testItem(settings, "A", "Three", srv.URL+"/3", -1),
	}

	m := newTestManager(settings, items)
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if maxInFlight != 1 {
		t.Errorf("max in-flight = %d, want exactly 1 in sequential mode", maxInFlight)
	}
}

func TestFetcher_WrapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	settings := testSettings(t)
	item := testItem(settings, "X", "Y", srv.URL, 1000)

	m := newTestManager(settings, nil)
	_, err := m.fetcher.Fetch(context.Background(), item)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fetchErr.URL != item.URL {
		t.Errorf("FetchError.URL = %q, want %q", fetchErr.URL, item.URL)
	}
}

func TestReporter(t *testing.T) {
	settings := testSettings(t)
	itemA := testItem(settings, "A", "One", "http://x", -1)
	itemB := testItem(settings, "B", "Two", "http://y", -1)

	r := NewReporter()
	r.Record(model.Outcome{Item: itemA, Status: model.StatusDownloaded, Detail: "1.00 MB"})
	r.Record(model.Outcome{Item: itemA, Status: model.StatusSkipped, Detail: "exists"})
	r.Record(model.Outcome{Item: itemB, Status: model.StatusFailed, Detail: "HTTP 410"})

	if r.Count(model.StatusDownloaded) != 1 || r.Count(model.StatusSkipped) != 1 || r.Count(model.StatusFailed) != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			r.Count(model.StatusDownloaded), r.Count(model.StatusSkipped), r.Count(model.StatusFailed))
	}
	if r.Total() != 3 {
		t.Errorf("Total() = %d, want 3", r.Total())
	}
	if !r.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}

	failures := r.Failures()
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].Item.Name() != "B - Two" || failures[0].Detail != "HTTP 410" {
		t.Errorf("failure = %s: %s", failures[0].Item.Name(), failures[0].Detail)
	}

	want := "1 downloaded, 1 skipped, 1 failed"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestReporter_ConcurrentRecord(t *testing.T) {
	settings := testSettings(t)
	item := testItem(settings, "A", "One", "http://x", -1)

	r := NewReporter()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record(model.Outcome{Item: item, Status: model.StatusDownloaded})
		}()
	}
	wg.Wait()

	if r.Count(model.StatusDownloaded) != 50 {
		t.Errorf("Count = %d, want 50", r.Count(model.StatusDownloaded))
	}
}
