package tkhttp

// Method is an HTTP request method: one of the well-known tokens or
// Other(name) for an extension method.
type Method struct {
	known MethodKind
	other string
}

// MethodKind classifies Method without allocating for the common case.
type MethodKind int

const (
	MethodOther MethodKind = iota
	MethodOptions
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodTrace
	MethodConnect
)

var methodNames = map[MethodKind]string{
	MethodOptions: "OPTIONS",
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodPatch:   "PATCH",
	MethodDelete:  "DELETE",
	MethodTrace:   "TRACE",
	MethodConnect: "CONNECT",
}

var methodByName = func() map[string]MethodKind {
	m := make(map[string]MethodKind, len(methodNames))
	for k, v := range methodNames {
		m[v] = k
	}
	return m
}()

// ParseMethod classifies a raw method token from the request line.
func ParseMethod(token string) Method {
	if kind, ok := methodByName[token]; ok {
		return Method{known: kind}
	}
	return Method{known: MethodOther, other: token}
}

// Kind returns the classified method kind (MethodOther for extension
// methods; use String() to get the literal token in that case).
func (m Method) Kind() MethodKind { return m.known }

// String returns the wire token for m.
func (m Method) String() string {
	if m.known == MethodOther {
		return m.other
	}
	return methodNames[m.known]
}

// IsHead reports whether m is the HEAD method — responses to HEAD MUST
// omit body bytes even when a Content-Length is declared.
func (m Method) IsHead() bool { return m.known == MethodHead }

// IsConnect reports whether m is CONNECT, which this library only
// supports via RecvModeHijack.
func (m Method) IsConnect() bool { return m.known == MethodConnect }
