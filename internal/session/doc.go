// Package session loads the authenticated Bandcamp cookies needed to
// access a fan's purchased collection.
//
// Cookies are read from a Netscape-format cookies.txt export of a
// logged-in browser session and carried as an explicit Session value.
// No package keeps cookie state globally; the HTTP client receives a
// Session at construction.
//
//	sess, err := session.Load(settings.CookiesPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := http.NewClient(sess)
package session
