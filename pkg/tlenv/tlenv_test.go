package tlenv

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/function61/gokit/testing/assert"
)

func TestResolve(t *testing.T) {
	os.Setenv(EnvVarName, "/tmp/via-env-var")
	defer os.Unsetenv(EnvVarName)

	env, err := Resolve("")
	assert.Ok(t, err)
	assert.EqualString(t, env.Dir(), "/tmp/via-env-var")

	// explicit argument wins over the env var
	env, err = Resolve("/tmp/explicit")
	assert.Ok(t, err)
	assert.EqualString(t, env.Dir(), "/tmp/explicit")

	os.Unsetenv(EnvVarName)

	env, err = Resolve("")
	assert.Ok(t, err)
	assert.Assert(t, strings.HasSuffix(env.Dir(), "/teachload-env"))
}

func TestPaths(t *testing.T) {
	env, err := Resolve("/tmp/envtest")
	assert.Ok(t, err)

	assert.EqualString(t, env.ConfigPath(), "/tmp/envtest/config.json")
	assert.EqualString(t, env.ManifestPath(), "/tmp/envtest/manifest.json")
	assert.EqualString(t, env.UIDir(), "/tmp/envtest/ui")
	assert.EqualString(t, env.StaticDir(), "/tmp/envtest/ui/static")
	assert.EqualString(t, env.DatabasePath(), "/tmp/envtest/data/teachload.db")
	assert.EqualString(t, env.ExportsDir(), "/tmp/envtest/data/exports")
}

func TestCheckGivesGuidance(t *testing.T) {
	dir, err := ioutil.TempDir("", "tlenv")
	assert.Ok(t, err)
	defer os.RemoveAll(dir)

	env, err := Resolve(filepath.Join(dir, "env"))
	assert.Ok(t, err)

	checkErr := env.Check()
	assert.Assert(t, checkErr != nil)
	assert.Assert(t, errors.Is(checkErr, ErrMissing))
	assert.Assert(t, strings.Contains(checkErr.Error(), "create it with: teachload init "))
}

func TestInit(t *testing.T) {
	dir, err := ioutil.TempDir("", "tlenv")
	assert.Ok(t, err)
	defer os.RemoveAll(dir)

	env, err := Resolve(filepath.Join(dir, "env"))
	assert.Ok(t, err)

	assert.Ok(t, env.Init())
	assert.Ok(t, env.Check())

	config, err := env.LoadConfig()
	assert.Ok(t, err)
	assert.EqualString(t, config.Listen, "127.0.0.1:8501")
	assert.EqualString(t, config.DepartmentName, "Ақпараттық технологиялар")
	assert.EqualString(t, config.MQTTAddress, "")

	manifest, err := env.LoadManifest()
	assert.Ok(t, err)
	assert.EqualString(t, manifest.Version, "1.0.0")
	assert.Assert(t, len(manifest.Assets) == 7)

	missing, err := env.MissingAssets()
	assert.Ok(t, err)
	assert.Assert(t, len(missing) == 0)

	// refuses to clobber
	initErr := env.Init()
	assert.Assert(t, initErr != nil)
	assert.Assert(t, strings.HasPrefix(initErr.Error(), "already initialized: "))
}

func TestMissingAssets(t *testing.T) {
	dir, err := ioutil.TempDir("", "tlenv")
	assert.Ok(t, err)
	defer os.RemoveAll(dir)

	env, err := Resolve(filepath.Join(dir, "env"))
	assert.Ok(t, err)
	assert.Ok(t, env.Init())

	// removed file is reported
	assert.Ok(t, os.Remove(filepath.Join(env.Dir(), "ui/home.html")))

	// modified file is reported even though it exists
	assert.Ok(t, ioutil.WriteFile(
		filepath.Join(env.Dir(), "ui/static/style.css"),
		[]byte("/* tampered */"),
		0644))

	missing, err := env.MissingAssets()
	assert.Ok(t, err)
	assert.Assert(t, len(missing) == 2)
	assert.EqualString(t, missing[0], "ui/home.html")
	assert.EqualString(t, missing[1], "ui/static/style.css")

	// reinstall repairs both
	assert.Ok(t, env.InstallAssets())

	missing, err = env.MissingAssets()
	assert.Ok(t, err)
	assert.Assert(t, len(missing) == 0)
}
