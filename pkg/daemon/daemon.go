// Package daemon serves battery reports over a unix-socket HTTP API.
// There is no polling loop: every request runs one fresh query
// through the backend orchestrator.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/power"
)

var (
	conf     config.Config
	platform string

	// registry is swapped wholesale on config reload while handlers
	// keep reading it, hence the atomic pointer.
	registry atomic.Pointer[power.Registry]
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/report", getReport)
	router.GET("/backends", getBackends)
	router.GET("/platform", getPlatform)
	router.GET("/config", getConfig)
	router.GET("/version", getVersion)

	return router
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}

	platform = power.CurrentPlatform()
	reg := power.DefaultRegistry(power.Options{
		SysfsRoot: conf.SysfsRoot(),
		Preferred: conf.PreferredBackends(),
	})
	if _, err := reg.BackendsFor(platform); err != nil {
		// Nothing can serve this machine; refuse to start.
		logrus.Fatalf("cannot serve battery reports: %v", err)
	}
	registry.Store(reg)
	logrus.WithField("platform", platform).Info("config loaded, backends registered")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := conf.Load(); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			registry.Store(power.DefaultRegistry(power.Options{
				SysfsRoot: conf.SysfsRoot(),
				Preferred: conf.PreferredBackends(),
			}))
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		if err := os.Chmod(unixSocketPath, 0o777); err != nil {
			logrus.Fatal(err)
		}
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	cancel()
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	return err
}
