package daemon

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/power"
	"github.com/battray/battray/pkg/version"
)

// ServedBackendHeader carries the name of the backend that produced
// the report, so clients get the diagnostics without polluting the
// report body.
const ServedBackendHeader = "X-Battray-Backend"

func getReport(c *gin.Context) {
	backends, err := registry.Load().BackendsFor(platform)
	if err != nil {
		logrus.Errorf("getReport failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	orch := power.NewOrchestrator(backends)
	orch.SetTimeout(conf.BackendTimeout())

	report, attempts, err := orch.Query(c.Request.Context())
	if err != nil {
		for _, a := range attempts {
			logrus.WithField("backend", a.Backend).Errorf("backend failed: %v", a.Err)
		}
		if errors.Is(err, power.ErrAllBackendsFailed) {
			c.IndentedJSON(http.StatusServiceUnavailable, err.Error())
			_ = c.AbortWithError(http.StatusServiceUnavailable, err)
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Header(ServedBackendHeader, power.Served(attempts))
	c.IndentedJSON(http.StatusOK, report)
}

func getBackends(c *gin.Context) {
	backends, err := registry.Load().BackendsFor(platform)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.Name())
	}
	c.IndentedJSON(http.StatusOK, names)
}

func getPlatform(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, platform)
}

func getConfig(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"sysfsRoot":             conf.SysfsRoot(),
		"allowNonRootAccess":    conf.AllowNonRootAccess(),
		"backendTimeoutSeconds": int(conf.BackendTimeout().Seconds()),
		"preferredBackends":     conf.PreferredBackends(),
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
