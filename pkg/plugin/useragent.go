package plugin

import (
	"github.com/GetPageSpeed/rpmbuilder/pkg/repos"
	"github.com/sirupsen/logrus"
)

const (
	UserAgentPluginName = "rpmbuilder_ua"
	DefaultPattern      = "*getpagespeed*"
)

// DefaultHeaders is the header list set on matching repos.
// The value is a placeholder kept as shipped.
var DefaultHeaders = []string{"User-Agent: XXXXXXXXXX"}

// UserAgent overrides the User-Agent sent to matching repos.
// The zero value uses DefaultPattern and DefaultHeaders.
type UserAgent struct {
	Pattern string
	Headers []string
}

var _ Plugin = (*UserAgent)(nil)

func (p *UserAgent) Name() string {
	return UserAgentPluginName
}

// Config replaces the HTTP header list of every repo whose ID matches the pattern.
// No match is a no-op.
func (p *UserAgent) Config(rs *repos.Dict) error {
	pattern := p.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	headers := p.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders
	}

	matched := rs.GetMatching(pattern)
	matched.SetHTTPHeaders(headers)
	logrus.Debugf("[%s] set headers on %d repo(s): %v", UserAgentPluginName, matched.Len(), matched.IDs())
	return nil
}
