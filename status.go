package tkhttp

import "strconv"

// Status is a 3-digit response status code plus its reason phrase.
type Status struct {
	Code   int
	Reason string
}

// NewStatus builds a Status, filling in the standard reason phrase when
// reason is empty and the code is well-known.
func NewStatus(code int, reason string) Status {
	if reason == "" {
		reason = reasonPhrase(code)
	}
	return Status{Code: code, Reason: reason}
}

// HasBody reports whether a response with this status code is permitted
// to carry body bytes on the wire.
func HasBody(code int) bool {
	if code >= 100 && code < 200 {
		return false
	}
	switch code {
	case 204, 304:
		return false
	}
	return true
}

func (s Status) String() string {
	return strconv.Itoa(s.Code) + " " + s.Reason
}

var standardReasons = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	200: "OK",
	201: "Created",
	202: "Accepted",
	204: "No Content",
	206: "Partial Content",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	408: "Request Timeout",
	411: "Length Required",
	413: "Payload Too Large",
	414: "URI Too Long",
	426: "Upgrade Required",
	431: "Request Header Fields Too Large",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	505: "HTTP Version Not Supported",
}

func reasonPhrase(code int) string {
	if r, ok := standardReasons[code]; ok {
		return r
	}
	return "Unknown"
}
