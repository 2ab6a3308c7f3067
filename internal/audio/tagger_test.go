package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/bandcamp-collector/internal/model"
)

func testTrack(t *testing.T, artist, title string) *model.Item {
	t.Helper()
	cfg := &model.PathConfig{
		DownloadsPath:  filepath.Join(t.TempDir(), "{artist}"),
		FileNameFormat: "{title} [{format}]",
	}
	item := model.NewItem(artist, title, "mp3-320", "http://unused.invalid", -1, model.KindTrack, cfg)

	if err := os.MkdirAll(filepath.Dir(item.Path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(item.Path, []byte{}, 0644); err != nil {
		t.Fatal(err)
	}
	return item
}

func TestTagFile(t *testing.T) {
	item := testTrack(t, "Some Artist", "Some Song")

	tagger := NewTagger()
	if err := tagger.TagFile(item); err != nil {
		t.Fatalf("TagFile() error = %v", err)
	}

	tag, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	if got := tag.Artist(); got != "Some Artist" {
		t.Errorf("Artist = %q, want %q", got, "Some Artist")
	}
	if got := tag.Title(); got != "Some Song" {
		t.Errorf("Title = %q, want %q", got, "Some Song")
	}
	if got := tag.GetTextFrame("TPE2").Text; got != "Some Artist" {
		t.Errorf("Album artist = %q, want %q", got, "Some Artist")
	}
}

func TestTagFile_OverwritesExistingTags(t *testing.T) {
	item := testTrack(t, "Right Artist", "Right Title")

	tag := id3v2.NewEmptyTag()
	tag.SetArtist("Wrong Artist")
	tag.SetTitle("Wrong Title")
	f, err := os.Create(item.Path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tagger := NewTagger()
	if err := tagger.TagFile(item); err != nil {
		t.Fatalf("TagFile() error = %v", err)
	}

	got, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer got.Close()

	if got.Artist() != "Right Artist" || got.Title() != "Right Title" {
		t.Errorf("tags = %q / %q, want rewritten values", got.Artist(), got.Title())
	}
}

func TestEmbedArtwork(t *testing.T) {
	item := testTrack(t, "Artist", "Song")

	tagger := NewTagger()
	if err := tagger.TagFile(item); err != nil {
		t.Fatal(err)
	}

	artwork := []byte{0xff, 0xd8, 0xff, 0xe0} // JPEG magic, enough for a frame payload
	if err := tagger.EmbedArtwork(item, artwork); err != nil {
		t.Fatalf("EmbedArtwork() error = %v", err)
	}

	tag, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	frames := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(frames) != 1 {
		t.Fatalf("got %d picture frames, want 1", len(frames))
	}
	pic, ok := frames[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("frame is %T, want PictureFrame", frames[0])
	}
	if pic.MimeType != "image/jpeg" || pic.PictureType != id3v2.PTFrontCover {
		t.Errorf("picture frame = %s/%d, want image/jpeg front cover", pic.MimeType, pic.PictureType)
	}
}
