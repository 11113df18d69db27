package repos

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
)

// ClientManager hands out one http.Client per repo.
// Each client routes through the repo proxy (if any) and sends the repo's extra headers.
type ClientManager struct {
	mu        sync.Mutex
	cliMap    map[string]*http.Client
	trWrapper func(base http.RoundTripper) http.RoundTripper
}

// NewClientManager 创建一个ClientManager
// 如果trWrapper非空，使用trWrapper包装配置了proxy的base transport
func NewClientManager(trWrapper func(base http.RoundTripper) http.RoundTripper) *ClientManager {
	return &ClientManager{
		cliMap:    make(map[string]*http.Client),
		trWrapper: trWrapper,
	}
}

// GetClient 获取repo对应的client
// 如果proxy为空或者解析失败，返回不使用proxy的client
func (cm *ClientManager) GetClient(r *Repo) *http.Client {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cli, ok := cm.cliMap[r.ID]; ok {
		return cli
	}

	var proxyURL *url.URL
	if r.Proxy != "" {
		u, err := url.Parse(r.Proxy)
		if err != nil {
			logrus.Warnf("[repo %s] invalid proxy %q, using direct connection: %v", r.ID, r.Proxy, err)
		} else {
			proxyURL = u
		}
	}

	cli := cm.newClient(r, proxyURL)
	cm.cliMap[r.ID] = cli
	return cli
}

func (cm *ClientManager) newClient(r *Repo, proxyURL *url.URL) *http.Client {
	baseTr := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != nil {
		baseTr.Proxy = http.ProxyURL(proxyURL)
	}

	var tr http.RoundTripper = baseTr
	if cm.trWrapper != nil {
		tr = cm.trWrapper(baseTr)
	}

	return &http.Client{Transport: &HeaderTransport{Repo: r, Base: tr}}
}
