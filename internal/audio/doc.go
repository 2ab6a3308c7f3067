// Package audio rewrites ID3 metadata on downloaded MP3 tracks.
//
// Use the Tagger to align a track's tags with the collection data:
//
//	tagger := audio.NewTagger()
//	err := tagger.TagFile(item)
//
// Cover art can be embedded separately once prepared:
//
//	err := tagger.EmbedArtwork(item, jpegBytes)
//
// Only single-track MP3 purchases are tagged; album purchases arrive
// as zip archives and are left untouched.
package audio
