package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/K9173A/todoapp/middleware"
	"github.com/K9173A/todoapp/templates"
	"github.com/K9173A/todoapp/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports whether the document store is reachable.
type Pinger func(ctx context.Context) error

// Server is the todoapp web server.
type Server struct {
	tasks  *TaskHandler
	ping   Pinger
	router *gin.Engine
}

// NewServer wires the routes of tasks onto a new gin engine. views must be
// the template set tasks renders with.
func NewServer(tasks *TaskHandler, views *template.Template, ping Pinger) *Server {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	s := &Server{
		tasks:  tasks,
		ping:   ping,
		router: router,
	}

	router.SetHTMLTemplate(views)
	router.StaticFS("/static", templates.Static())

	router.GET("/healthz", s.check)

	router.GET("/", tasks.Root)
	router.GET("/p/:page", tasks.Index)
	router.GET("/create_task", tasks.CreateForm)
	router.POST("/create_task", tasks.CreateTask)
	router.GET("/update_task", tasks.UpdateForm)
	router.PUT("/update_task", tasks.UpdateTask)
	router.DELETE("/remove_task", tasks.RemoveTask)

	return s
}

// Handler returns the http.Handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is done, then waits for open requests to
// finish.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()

	log.Info().Str("addr", addr).Msg("server starting")

	select {
	case err := <-listenErrs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr := server.Shutdown(shutdownCtx)
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

func (s *Server) check(c *gin.Context) {
	if s.ping != nil {
		if err := s.ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			utils.ResponseWithError(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	utils.ResponseWithJson(c, http.StatusOK, gin.H{"status": "healthy"})
}
