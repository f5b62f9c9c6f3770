package ui

import (
	"github.com/gin-gonic/gin"

	"sheetstore/app"
)

// Server exposes the table service as a JSON API.
type Server struct {
	router  *gin.Engine
	service *app.TableService
}

// NewServer creates the server and registers its routes.
func NewServer(service *app.TableService) *Server {
	s := &Server{
		router:  gin.Default(),
		service: service,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/files", s.handleList)
	api.GET("/files/:id", s.handleGet)
	api.DELETE("/files/:id", s.handleDelete)
	api.POST("/search", s.handleSearch)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
