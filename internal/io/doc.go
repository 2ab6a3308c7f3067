// Package ioutils provides file system and image processing helpers.
//
// # File Operations
//
//	err := ioutils.WriteFile(ctx, "/path/to/cover.jpg", data)
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService prepares downloaded cover art for saving or
// embedding:
//
//	svc := ioutils.NewImageService()
//	prepared, err := svc.PrepareCoverArt(ctx, raw, true, 1000, true)
package ioutils
