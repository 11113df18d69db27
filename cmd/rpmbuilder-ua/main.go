package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GetPageSpeed/rpmbuilder/pkg/config"
	"github.com/GetPageSpeed/rpmbuilder/pkg/logging"
	"github.com/GetPageSpeed/rpmbuilder/pkg/plugin"
	"github.com/GetPageSpeed/rpmbuilder/pkg/repos"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		configFile string
		logLevel   string
		logFile    string
		listen     string
		probe      bool
	)
	flag.StringVar(&configFile, "c", "./config.yaml", "config file path")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	flag.StringVar(&listen, "listen", "", "serve repo status on this address, e.g. :8080")
	flag.BoolVar(&probe, "probe", false, "fetch repodata/repomd.xml from every enabled repo")
	flag.Parse()

	closer, err := logging.Setup(logLevel, logFile)
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up logging")
	}
	defer closer.Close()

	logrus.Infof("Using config file: %s", configFile)
	conf, err := config.ReadConfigFile(configFile)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read config file")
	}

	rs, err := conf.BuildDict()
	if err != nil {
		logrus.WithError(err).Fatal("failed to build repos from config")
	}

	registry := plugin.NewRegistry()
	if ua := conf.UserAgentPlugin(); ua != nil {
		if err := registry.Register(ua); err != nil {
			logrus.WithError(err).Fatal("failed to register plugin")
		}
	}
	if err := registry.Configure(rs); err != nil {
		logrus.WithError(err).Fatal("plugin configuration failed")
	}

	printRepos(os.Stdout, rs)

	if probe {
		probeRepos(os.Stdout, rs, repos.NewClientManager(nil), 10*time.Second)
	}

	if listen != "" {
		gin.SetMode(gin.ReleaseMode)
		s := NewServer(rs, registry.Names())
		logrus.Infof("listening %s", listen)
		logrus.Fatal(http.ListenAndServe(listen, s.Router()))
	}
}

func printRepos(w io.Writer, rs *repos.Dict) {
	for _, r := range rs.All() {
		fmt.Fprintf(w, "%s\tenabled=%t\theaders=[%s]\n", r.ID, r.Enabled, strings.Join(r.Headers(), ", "))
	}
}

func probeRepos(w io.Writer, rs *repos.Dict, cm *repos.ClientManager, timeout time.Duration) {
	for _, r := range rs.All() {
		if !r.Enabled || r.BaseURL == "" {
			continue
		}
		status, err := probeRepo(cm.GetClient(r), r, timeout)
		if err != nil {
			logrus.Warnf("[probe] repo %s: %v", r.ID, err)
			fmt.Fprintf(w, "%s\terror=%v\n", r.ID, err)
			continue
		}
		fmt.Fprintf(w, "%s\tstatus=%d\n", r.ID, status)
	}
}

func probeRepo(cli *http.Client, r *repos.Repo, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	u := strings.TrimRight(r.BaseURL, "/") + "/repodata/repomd.xml"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("new request error: %w", err)
	}
	resp, err := cli.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
