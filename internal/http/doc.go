// Package http provides an HTTP client configured for Bandcamp requests.
//
// The Client in this package handles:
//   - Authenticated requests using cookies from an explicit Session
//   - User-Agent headers for Bandcamp compatibility
//   - Atomic file downloads with progress tracking
//   - File size retrieval via HEAD requests
//   - Timeout handling
//
// # Basic Usage
//
//	sess, _ := session.Load(cookiesPath)
//	client := http.NewClient(sess)
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://bandcamp.com/somefan")
//
//	// Download file with progress callback
//	n, err := client.DownloadFile(ctx, itemURL, "/path/to/file.zip", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Atomic Downloads
//
// DownloadFile streams to a ".part" file and renames it into place
// only after the transfer completes, so a failed or cancelled download
// never leaves a partial file at the destination path.
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
