package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/reminders"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server serves the reminder pages and the JSON API.
type Server struct {
	svc    *reminders.Service
	logger *log.Logger
	router *gin.Engine
	now    func() time.Time
}

// NewServer wires routes and templates around svc.
func NewServer(svc *reminders.Service, logger *log.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date":         datemask.Format,
		"categoryName": categoryName,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		svc:    svc,
		logger: logger,
		router: router,
		now:    time.Now,
	}

	// Web routes
	router.GET("/", s.handleIndex)
	router.GET("/lembretes/novo", s.handleNewForm)
	router.POST("/lembretes", s.handleCreate)
	router.GET("/lembretes/:id/editar", s.handleEditForm)
	router.POST("/lembretes/:id", s.handleUpdate)
	router.POST("/lembretes/:id/concluir", s.handleToggle)
	router.POST("/lembretes/:id/excluir", s.handleDelete)
	router.GET("/categorias", s.handleCategories)
	router.POST("/categorias", s.handleCreateCategory)
	router.POST("/categorias/:id/excluir", s.handleDeleteCategory)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/lembretes", s.handleAPIList)
		api.GET("/lembretes/proximos", s.handleAPIUpcoming)
		api.POST("/lembretes", s.handleAPICreate)
		api.GET("/lembretes/:id", s.handleAPIGet)
		api.PUT("/lembretes/:id", s.handleAPIUpdate)
		api.PATCH("/lembretes/:id/concluido", s.handleAPIComplete)
		api.DELETE("/lembretes/:id", s.handleAPIDelete)
		api.GET("/categorias", s.handleAPIListCategories)
		api.POST("/categorias", s.handleAPICreateCategory)
		api.PUT("/categorias/:id", s.handleAPIUpdateCategory)
		api.DELETE("/categorias/:id", s.handleAPIDeleteCategory)
		api.GET("/sugestoes", s.handleAPISuggest)
		api.GET("/data", s.handleAPIDate)
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func categoryName(names map[int64]string, id *int64) string {
	if id == nil {
		return ""
	}
	return names[*id]
}
