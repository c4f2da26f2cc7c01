package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/emrgen/peps/internal/config"
	"github.com/emrgen/peps/internal/ingest"
	"github.com/emrgen/peps/internal/jobs"
	"github.com/emrgen/peps/internal/mirror"
	"github.com/emrgen/peps/internal/service"
	"github.com/emrgen/peps/internal/store"
	"github.com/emrgen/peps/internal/upstream"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the http server and, when a schedule is configured, the
// background sync.
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	rdb := config.GetDb(cnf)

	pepStore := store.NewGormStore(rdb)
	if err := pepStore.Migrate(); err != nil {
		return err
	}

	queries := service.NewQueryService(pepStore)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet},
		AllowHeaders:     []string{"Authorization"},
		AllowCredentials: true,
	}))
	// log the request time
	e.Use(RequestTime())

	NewHandler(queries).Register(e)

	if cnf.SyncSchedule != "" {
		syncer := ingest.NewSyncer(
			upstream.NewClient(cnf.IndexURL),
			mirror.NewDir(cnf.PepsDir),
			pepStore,
		)

		executor := jobs.NewTaskExecutor([]jobs.CronJob{
			jobs.NewSyncTask(cnf.SyncSchedule, syncer),
		})
		executor.Run()
		defer executor.Stop()

		logrus.Infof("scheduled sync: %s", cnf.SyncSchedule)
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting http server on: ", httpPort)
		if err := e.Start(httpPort); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting http server: %v", err)
			}
		}
		logrus.Infof("http server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	if err := e.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	wg.Wait()

	return nil
}
