// Package model defines the core data structures used throughout
// bandcamp-collector.
//
// # Item
//
// Item represents one downloadable purchase from a fan's collection,
// with its destination path computed up front:
//
//	item := model.NewItem("Artist", "Title", "flac", url, size, model.KindAlbum, pathConfig)
//	fmt.Println(item.Path) // Where the item will be saved
//
// # Outcome
//
// Outcome is the terminal result of processing one item:
//
//	outcome := model.Outcome{Item: item, Status: model.StatusDownloaded, Detail: "1.2 MB"}
//
// # Path Configuration
//
// PathConfig controls how item paths are computed using placeholders:
//
//	cfg := &model.PathConfig{
//	    DownloadsPath:  "/music/{artist}",
//	    FileNameFormat: "{title} [{format}]",
//	}
//
// Available placeholders: {artist}, {title}, {format}
package model
