package config

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/power"
	"github.com/battray/battray/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	SysfsRoot:             ptr.To(power.DefaultSysfsRoot),
	AllowNonRootAccess:    ptr.To(false),
	BackendTimeoutSeconds: ptr.To(int(power.DefaultBackendTimeout / time.Second)),
}

var _ Config = &File{}

// File is a JSON-file-backed Config. Unset fields fall back to the
// defaults, so an empty or missing file is a valid configuration.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// RawFileConfig is the on-disk shape. Pointer fields distinguish
// "unset" from zero values.
type RawFileConfig struct {
	SysfsRoot             *string             `json:"sysfsRoot,omitempty"`
	AllowNonRootAccess    *bool               `json:"allowNonRootAccess,omitempty"`
	BackendTimeoutSeconds *int                `json:"backendTimeoutSeconds,omitempty"`
	PreferredBackends     map[string][]string `json:"preferredBackends,omitempty"`
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.filepath)
	if os.IsNotExist(err) {
		logrus.Warnf("config file %s does not exist, using defaults", f.filepath)
		f.c = &RawFileConfig{}
		return nil
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read config %s", f.filepath)
	}

	c := &RawFileConfig{}
	if err := json.Unmarshal(b, c); err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config %s", f.filepath)
	}
	f.c = c
	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	b, err := json.MarshalIndent(f.c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.filepath, b, 0o644)
}

func (f *File) SysfsRoot() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.SysfsRoot != nil {
		return *f.c.SysfsRoot
	}
	return *defaultFileConfig.SysfsRoot
}

func (f *File) AllowNonRootAccess() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.AllowNonRootAccess != nil {
		return *f.c.AllowNonRootAccess
	}
	return *defaultFileConfig.AllowNonRootAccess
}

func (f *File) SetAllowNonRootAccess(allow bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = ptr.To(allow)
}

func (f *File) BackendTimeout() time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()

	seconds := *defaultFileConfig.BackendTimeoutSeconds
	if f.c.BackendTimeoutSeconds != nil && *f.c.BackendTimeoutSeconds > 0 {
		seconds = *f.c.BackendTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (f *File) PreferredBackends() map[string][]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.c.PreferredBackends
}
