package buffered

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/client"
)

// Get returns a ClientCodec issuing a fully buffered GET request to u.
// The host is normalized to its ASCII (punycode) form before being sent
// as the Host header, so an international domain name in u works the
// same as it does in a browser address bar.
func Get(u *url.URL, done func(*Response, error)) *ClientCodec {
	return NewClientCodec(func(enc *client.Encoder) error {
		path := u.EscapedPath()
		if path == "" {
			path = "/"
		}
		if u.RawQuery != "" {
			path += "?" + u.RawQuery
		}
		enc.RequestLine("GET", path, tkhttp.HTTP11)
		host, err := normalizeHost(u.Host)
		if err != nil {
			return err
		}
		if err := enc.AddHeader("Host", host); err != nil {
			return err
		}
		if err := enc.AddLength(0); err != nil {
			return err
		}
		if _, err := enc.DoneHeaders(); err != nil {
			return err
		}
		enc.Done()
		return nil
	}, done)
}

// normalizeHost converts the hostname portion of a "host[:port]" authority
// to ASCII/punycode, leaving any port suffix untouched.
func normalizeHost(authority string) (string, error) {
	hostname, port := authority, ""
	if i := strings.LastIndexByte(authority, ':'); i >= 0 {
		hostname, port = authority[:i], authority[i:]
	}
	ascii, err := idna.ToASCII(hostname)
	if err != nil {
		return "", err
	}
	return ascii + port, nil
}
