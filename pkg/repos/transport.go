package repos

import (
	"fmt"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrMalformedHeader = fmt.Errorf("malformed header line")

// ParseHeader splits a "<Field-Name>: <value>" line.
func ParseHeader(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	return textproto.CanonicalMIMEHeaderKey(key), strings.TrimSpace(value), nil
}

// HeaderTransport applies the repo's current extra headers to every outbound request.
type HeaderTransport struct {
	Repo *Repo
	Base http.RoundTripper
}

var _ http.RoundTripper = (*HeaderTransport)(nil)

func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	headers := t.Repo.Headers()
	if len(headers) > 0 {
		req = req.Clone(req.Context())
		for _, line := range headers {
			k, v, err := ParseHeader(line)
			if err != nil {
				logrus.WithContext(req.Context()).Warnf("[repo %s] skip header: %v", t.Repo.ID, err)
				continue
			}
			req.Header.Set(k, v)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
