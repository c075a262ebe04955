// The runtime environment directory: configuration, installed web UI assets
// with their integrity manifest, and the data directory. Everything the
// server needs at runtime lives under one directory so the launcher can
// check, repair and activate it as a unit.
package tlenv

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/function61/gokit/encoding/jsonfile"
)

// overrides the environment directory location for every command
const EnvVarName = "TEACHLOAD_ENV"

const defaultDirName = "teachload-env"

var ErrMissing = errors.New("runtime environment not found")

type Env struct {
	dir string
}

// Resolve picks the environment directory: the explicit argument wins, then
// TEACHLOAD_ENV, then ./teachload-env.
func Resolve(explicit string) (*Env, error) {
	dir := explicit
	if dir == "" {
		dir = os.Getenv(EnvVarName)
	}
	if dir == "" {
		dir = defaultDirName
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return &Env{dir: abs}, nil
}

func (e *Env) Dir() string          { return e.dir }
func (e *Env) ConfigPath() string   { return filepath.Join(e.dir, "config.json") }
func (e *Env) ManifestPath() string { return filepath.Join(e.dir, "manifest.json") }
func (e *Env) UIDir() string        { return filepath.Join(e.dir, "ui") }
func (e *Env) StaticDir() string    { return filepath.Join(e.dir, "ui", "static") }
func (e *Env) DataDir() string      { return filepath.Join(e.dir, "data") }
func (e *Env) ExportsDir() string   { return filepath.Join(e.dir, "data", "exports") }
func (e *Env) DatabasePath() string { return filepath.Join(e.dir, "data", "teachload.db") }

// Check verifies the environment is present and initialized. The error
// doubles as user guidance.
func (e *Env) Check() error {
	if _, err := os.Stat(e.ConfigPath()); err != nil {
		return fmt.Errorf("%w at %s (create it with: teachload init %s)", ErrMissing, e.dir, e.dir)
	}

	return nil
}

// Init prepares the environment directory: default configuration, UI assets
// with their manifest and the data directory. Refuses to touch a directory
// that is already initialized.
func (e *Env) Init() error {
	if _, err := os.Stat(e.ConfigPath()); err == nil {
		return fmt.Errorf("already initialized: %s", e.dir)
	}

	for _, dir := range []string{e.dir, e.UIDir(), e.DataDir(), e.ExportsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := e.writeJSON(e.ConfigPath(), DefaultConfig()); err != nil {
		return err
	}

	return e.InstallAssets()
}

func (e *Env) writeJSON(path string, value interface{}) error {
	buf := &bytes.Buffer{}
	if err := jsonfile.Marshal(buf, value); err != nil {
		return err
	}

	return ioutil.WriteFile(path, buf.Bytes(), 0644)
}
