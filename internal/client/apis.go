package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/battray/battray/pkg/daemon"
	"github.com/battray/battray/pkg/power"
)

// GetReport asks the daemon for a fresh battery report. The second
// return value names the backend that served it.
func (c *Client) GetReport() (*power.Report, string, error) {
	body, headers, err := c.Get("/report")
	if err != nil {
		return nil, "", pkgerrors.Wrapf(err, "failed to get battery report")
	}

	var report power.Report
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, "", pkgerrors.Wrapf(err, "failed to unmarshal battery report")
	}

	return &report, headers.Get(daemon.ServedBackendHeader), nil
}

// GetBackends returns the candidate backend names for the daemon's
// platform, in fallback order.
func (c *Client) GetBackends() ([]string, error) {
	body, _, err := c.Get("/backends")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get backends")
	}

	var names []string
	if err := json.Unmarshal([]byte(body), &names); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal backends")
	}
	return names, nil
}

// GetPlatform returns the platform identifier the daemon selected
// backends for.
func (c *Client) GetPlatform() (string, error) {
	body, _, err := c.Get("/platform")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get platform")
	}

	var platform string
	if err := json.Unmarshal([]byte(body), &platform); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal platform")
	}
	return platform, nil
}

// GetVersion returns the daemon's version string.
func (c *Client) GetVersion() (string, error) {
	body, _, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get daemon version")
	}

	var v string
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal daemon version")
	}
	return v, nil
}
