package session

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session is an explicit credential bundle for talking to Bandcamp.
//
// A logged-in browser session is required to access a fan's purchased
// collection. Session carries those cookies as a value passed into
// whatever needs them, never as process-wide state: the HTTP client
// takes a Session at construction and nothing else in the program
// touches cookies.
//
// Example:
//
//	sess, err := session.Load("~/.config/bandcamp-collector/cookies.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := http.NewClient(sess)
type Session struct {
	cookies []*http.Cookie
}

// FromCookies creates a Session from already-parsed cookies.
func FromCookies(cookies []*http.Cookie) *Session {
	return &Session{cookies: cookies}
}

// Load reads a Session from a Netscape-format cookies.txt file.
//
// This is the export format produced by browser extensions like
// "Get cookies.txt" and consumed by tools like curl and yt-dlp:
//
//	# Netscape HTTP Cookie File
//	.bandcamp.com	TRUE	/	TRUE	1767225600	identity	abc123
//
// Lines starting with # are comments, except the #HttpOnly_ prefix
// some exporters put in front of the domain. Expired cookies are
// dropped at load time.
//
// Returns an error if the file cannot be read or no usable cookie
// survives parsing.
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open cookies file: %w", err)
	}
	defer f.Close()

	var cookies []*http.Cookie
	now := time.Now()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// #HttpOnly_ marks a real cookie line, everything else
		// starting with # is a comment.
		httpOnly := false
		if strings.HasPrefix(line, "#HttpOnly_") {
			httpOnly = true
			line = strings.TrimPrefix(line, "#HttpOnly_")
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}
		// expires == 0 means a session cookie, keep it
		if expires > 0 && time.Unix(expires, 0).Before(now) {
			continue
		}

		cookie := &http.Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   fields[3] == "TRUE",
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if expires > 0 {
			cookie.Expires = time.Unix(expires, 0)
		}
		cookies = append(cookies, cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read cookies file: %w", err)
	}

	if len(cookies) == 0 {
		return nil, fmt.Errorf("no usable cookies in %s (export a fresh cookies.txt while logged in to bandcamp.com)", path)
	}

	return &Session{cookies: cookies}, nil
}

// Cookies returns the cookies in this session.
func (s *Session) Cookies() []*http.Cookie {
	return s.cookies
}

// Jar builds an http.CookieJar holding the session's cookies, suitable
// for plugging into an http.Client. Cookies are registered under their
// own domains so the jar's normal domain matching applies.
func (s *Session) Jar() (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	byDomain := make(map[string][]*http.Cookie)
	for _, c := range s.cookies {
		host := strings.TrimPrefix(c.Domain, ".")
		byDomain[host] = append(byDomain[host], c)
	}

	for host, cookies := range byDomain {
		u := &url.URL{Scheme: "https", Host: host}
		jar.SetCookies(u, cookies)
	}

	return jar, nil
}
