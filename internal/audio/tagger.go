package audio

import (
	"os"

	"github.com/bogem/id3v2"
	"github.com/handiism/bandcamp-collector/internal/model"
)

// Tagger writes ID3 tags to downloaded MP3 files.
//
// Bandcamp's single-track MP3s often ship with sparse or inconsistent
// metadata; the Tagger rewrites the identity frames from the collection
// data so the local library stays consistent:
//   - Artist (TPE1) and Album Artist (TPE2)
//   - Title (TIT2)
//   - Genre is cleared, as Bandcamp provides none
//
// Example:
//
//	tagger := audio.NewTagger()
//	if err := tagger.TagFile(item); err != nil {
//	    log.Printf("Failed to tag %s: %v", item.Path, err)
//	}
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// TagFile writes the item's identity frames to the MP3 file at
// item.Path. A file with no existing tag gets a fresh one.
func (t *Tagger) TagFile(item *model.Item) error {
	tag, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			tag = id3v2.NewEmptyTag()
		} else {
			return err
		}
	}
	defer tag.Close()

	tag.SetArtist(item.Artist)
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, item.Artist)
	tag.SetTitle(item.Title)
	tag.SetGenre("")

	return tag.Save()
}

// EmbedArtwork attaches a front-cover picture frame to the MP3 file at
// item.Path, replacing any existing attached pictures. The artwork is
// expected to be JPEG encoded.
func (t *Tagger) EmbedArtwork(item *model.Item, artwork []byte) error {
	tag, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})

	return tag.Save()
}
