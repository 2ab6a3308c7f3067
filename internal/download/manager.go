package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/handiism/bandcamp-collector/internal/audio"
	"github.com/handiism/bandcamp-collector/internal/bandcamp"
	"github.com/handiism/bandcamp-collector/internal/config"
	bchttp "github.com/handiism/bandcamp-collector/internal/http"
	ioutils "github.com/handiism/bandcamp-collector/internal/io"
	"github.com/handiism/bandcamp-collector/internal/model"
	"github.com/handiism/bandcamp-collector/internal/session"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update during resolution or download.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates collection downloads.
//
// A Manager is used in two phases:
//
//  1. Initialize resolves the fan's collection into items.
//  2. Run processes every item through the existence check and, where
//     needed, the fetcher, under the configured worker limit.
//
// Outcomes stream into the Manager's Reporter as they are produced;
// Run also returns the full outcome list, one entry per item, in item
// order. A failed item never stops the batch.
type Manager struct {
	settings     *config.Settings
	client       *bchttp.Client
	resolver     *bandcamp.Resolver
	fetcher      *Fetcher
	tagger       *audio.Tagger
	imageService *ioutils.ImageService
	reporter     *Reporter

	items []*model.Item

	totalItems    int32
	doneItems     int32
	receivedBytes int64
	totalBytes    int64

	onProgress func(ProgressEvent)
}

// NewManager creates a download Manager for the given session.
//
// onProgress may be nil; when set it receives leveled progress events
// from both the resolve and download phases.
func NewManager(settings *config.Settings, sess *session.Session, onProgress func(ProgressEvent)) *Manager {
	client := bchttp.NewClient(sess)

	m := &Manager{
		settings:     settings,
		client:       client,
		resolver:     bandcamp.NewResolver(client, settings.Format, settings.ToPathConfig()),
		tagger:       audio.NewTagger(),
		imageService: ioutils.NewImageService(),
		reporter:     NewReporter(),
		onProgress:   onProgress,
	}
	m.fetcher = NewFetcher(client, nil)

	return m
}

// Initialize resolves the fan's collection into download items.
//
// Resolution fans out over the configured worker count: each
// redownload page is fetched and parsed, then expected sizes are
// resolved via HEAD requests. Purchases that don't offer the
// configured format are reported as warnings and dropped, matching
// how a missing format is a per-item condition, not a batch failure.
func (m *Manager) Initialize(ctx context.Context, username string) error {
	if err := m.settings.Validate(); err != nil {
		return err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Retrieving collection for [%s]", username), Level: LevelInfo})

	urls, err := m.resolver.FetchRedownloadURLs(ctx, username)
	if err != nil {
		return err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d purchases in collection", len(urls)), Level: LevelInfo})

	// Resolve each redownload page. Slots are filled by index so no
	// lock is needed; failed slots stay nil and are compacted below.
	resolved := make([]*model.Item, len(urls))

	g := new(errgroup.Group)
	g.SetLimit(m.settings.Workers)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			item, err := m.resolver.ResolveItem(ctx, url)
			if err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping purchase: %v", err), Level: LevelWarning})
				return nil
			}
			m.resolver.ResolveSize(ctx, item)
			resolved[i] = item
			m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved: %s", item.Name()), Level: LevelVerbose})
			return nil
		})
	}
	g.Wait()

	for _, item := range resolved {
		if item == nil {
			continue
		}
		m.items = append(m.items, item)
		if item.SizeKnown() {
			m.totalBytes += item.ExpectedSize
		}
	}
	atomic.StoreInt32(&m.totalItems, int32(len(m.items)))

	return nil
}

// Items returns the resolved download items.
func (m *Manager) Items() []*model.Item {
	return m.items
}

// ItemNames returns a display name per resolved item.
func (m *Manager) ItemNames() []string {
	names := make([]string, len(m.items))
	for i, item := range m.items {
		names[i] = item.Name()
	}
	return names
}

// Reporter returns the Manager's outcome reporter.
func (m *Manager) Reporter() *Reporter {
	return m.reporter
}

// GetProgress returns current run progress.
func (m *Manager) GetProgress() (done, total int32, received, expected int64) {
	return atomic.LoadInt32(&m.doneItems), atomic.LoadInt32(&m.totalItems),
		atomic.LoadInt64(&m.receivedBytes), m.totalBytes
}

// Run processes every resolved item and returns one outcome per item.
//
// Items are fanned out across the configured worker count; at most
// that many transfers are in flight at once, and a worker count of 1
// degrades to fully sequential execution. Each worker writes its
// outcome into its own slot and records it with the Reporter, so a
// failure is isolated to its item: nothing is cancelled, every item
// always yields exactly one outcome, and Run's error is reserved for
// conditions that prevent the run from starting at all.
func (m *Manager) Run(ctx context.Context) ([]model.Outcome, error) {
	if err := m.settings.Validate(); err != nil {
		return nil, err
	}

	outcomes := make([]model.Outcome, len(m.items))

	// Deliberately not errgroup.WithContext: a worker error must not
	// cancel siblings. Workers always return nil and communicate
	// through their outcome slot instead.
	g := new(errgroup.Group)
	g.SetLimit(m.settings.Workers)

	for i, item := range m.items {
		i, item := i, item
		g.Go(func() error {
			outcomes[i] = m.processItem(ctx, item)
			m.reporter.Record(outcomes[i])
			atomic.AddInt32(&m.doneItems, 1)
			return nil
		})
	}

	g.Wait()
	return outcomes, nil
}

// processItem runs one item through check, fetch and post-processing,
// and converts every error into a Failed outcome at this boundary.
func (m *Manager) processItem(ctx context.Context, item *model.Item) model.Outcome {
	result, err := Check(item.Path, item.ExpectedSize, m.settings.Force)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cannot use destination for %s: %v", item.Name(), err), Level: LevelError})
		return model.Outcome{Item: item, Status: model.StatusFailed, Detail: err.Error()}
	}

	if result == AlreadySatisfied {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(item.Path)), Level: LevelVerbose})
		return model.Outcome{Item: item, Status: model.StatusSkipped, Detail: "file exists with expected size"}
	}

	written, err := m.fetcher.Fetch(ctx, item)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed: %s: %v", item.Name(), err), Level: LevelError})
		return model.Outcome{Item: item, Status: model.StatusFailed, Detail: err.Error()}
	}

	atomic.AddInt64(&m.receivedBytes, written)

	m.postProcess(ctx, item)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(item.Path)), Level: LevelSuccess})
	return model.Outcome{Item: item, Status: model.StatusDownloaded, Detail: fmt.Sprintf("%.2f MB", float64(written)/1024/1024)}
}

// postProcess applies optional cover art saving and MP3 tagging.
// Failures here degrade to warnings; the item itself already succeeded.
func (m *Manager) postProcess(ctx context.Context, item *model.Item) {
	isMP3Track := item.Kind == model.KindTrack && strings.EqualFold(filepath.Ext(item.Path), ".mp3")

	var artwork []byte
	if m.settings.SaveCoverArt && item.HasArtwork() {
		var err error
		artwork, err = m.saveCoverArt(ctx, item)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not save artwork for %s: %v", item.Name(), err), Level: LevelWarning})
		}
	}

	if m.settings.ModifyTags && isMP3Track {
		if err := m.tagger.TagFile(item); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not tag %s: %v", item.Name(), err), Level: LevelWarning})
		}
		if artwork != nil && m.settings.ConvertCoverArtToJPG {
			if err := m.tagger.EmbedArtwork(item, artwork); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Could not embed artwork in %s: %v", item.Name(), err), Level: LevelWarning})
			}
		}
	}
}

// saveCoverArt downloads the item's artwork and writes it next to the
// item file, resized and converted according to settings. The prepared
// bytes are returned so they can also be embedded as an ID3 frame.
func (m *Manager) saveCoverArt(ctx context.Context, item *model.Item) ([]byte, error) {
	artwork, err := m.client.DownloadBytes(ctx, item.ArtworkURL)
	if err != nil {
		return nil, err
	}

	artwork, err = m.imageService.PrepareCoverArt(ctx, artwork,
		m.settings.CoverArtResize, m.settings.CoverArtMaxSize, m.settings.ConvertCoverArtToJPG)
	if err != nil {
		return nil, err
	}

	if err := ioutils.WriteFile(ctx, item.ArtworkPath, artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
