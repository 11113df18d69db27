package main

import (
	"fmt"
	"net/http"

	"github.com/GetPageSpeed/rpmbuilder/pkg/errutils"
	"github.com/GetPageSpeed/rpmbuilder/pkg/repos"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type repoView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BaseURL     string   `json:"baseurl"`
	Enabled     bool     `json:"enabled"`
	HTTPHeaders []string `json:"http_headers"`
}

func newRepoView(r *repos.Repo) repoView {
	return repoView{
		ID:          r.ID,
		Name:        r.Name,
		BaseURL:     r.BaseURL,
		Enabled:     r.Enabled,
		HTTPHeaders: r.Headers(),
	}
}

type Server struct {
	repos   *repos.Dict
	plugins []string
}

func NewServer(rs *repos.Dict, plugins []string) *Server {
	return &Server{repos: rs, plugins: plugins}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), gzip.Gzip(gzip.DefaultCompression), errutils.ErrorHandlingMiddleware())
	r.GET("/repos", s.ListReposHandler())
	r.GET("/repos/:id", s.GetRepoHandler())
	r.GET("/plugins", s.PluginsHandler())
	return r
}

func (s *Server) ListReposHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		all := s.repos.All()
		views := make([]repoView, 0, len(all))
		for _, r := range all {
			views = append(views, newRepoView(r))
		}
		c.JSON(http.StatusOK, views)
	}
}

func (s *Server) GetRepoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		r, ok := s.repos.Get(id)
		if !ok {
			_ = c.Error(errutils.NewHandlerError(
				fmt.Errorf("repo %s not found", id),
				http.StatusNotFound, "Repo Not Found"))
			return
		}
		c.JSON(http.StatusOK, newRepoView(r))
	}
}

func (s *Server) PluginsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"plugins": s.plugins})
	}
}
