// Package bandcamp resolves a fan's purchased collection into
// downloadable items.
//
// Bandcamp embeds page state as JSON in a pagedata div on both the fan
// page and each purchase's redownload page. This package extracts and
// deserializes those blobs, and drives the fancollection API to page
// through collections larger than what the fan page lists.
//
// # Collection Resolution
//
//	resolver := bandcamp.NewResolver(client, "mp3-320", pathConfig)
//
//	urls, err := resolver.FetchRedownloadURLs(ctx, "somefan")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, url := range urls {
//	    item, err := resolver.ResolveItem(ctx, url)
//	    if err != nil {
//	        continue // e.g. format not offered for this purchase
//	    }
//	    resolver.ResolveSize(ctx, item)
//	}
//
// # Parsing
//
// The parsing functions are exposed separately so they can be tested
// against captured HTML without any network:
//
//	fanPage, err := bandcamp.ParseFanPage(htmlContent)
//	item, err := bandcamp.ParseDownloadPage(htmlContent)
package bandcamp
