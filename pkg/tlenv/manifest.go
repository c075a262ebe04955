package tlenv

import (
	"crypto/sha256"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/function61/gokit/encoding/jsonfile"
)

const uiVersion = "1.0.0"

// Manifest declares the UI asset files the server needs, with checksums, so
// the launcher can probe whether the installed UI is intact.
type Manifest struct {
	Version string          `json:"version"`
	Assets  []ManifestAsset `json:"assets"`
}

type ManifestAsset struct {
	Path   string `json:"path"` // relative to the env dir
	SHA256 string `json:"sha256"`
}

// BuiltinManifest describes the UI assets this binary can install.
func BuiltinManifest() Manifest {
	manifest := Manifest{Version: uiVersion}

	for _, asset := range builtinUIAssets {
		manifest.Assets = append(manifest.Assets, ManifestAsset{
			Path:   asset.Path,
			SHA256: assetSum(asset.Content),
		})
	}

	return manifest
}

func (e *Env) LoadManifest() (*Manifest, error) {
	file, err := os.Open(e.ManifestPath())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	manifest := &Manifest{}
	if err := jsonfile.UnmarshalDisallowUnknownFields(file, manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}

// MissingAssets probes the manifest's assets on disk. An asset whose file is
// absent or whose checksum differs needs (re)installation.
func (e *Env) MissingAssets() ([]string, error) {
	manifest, err := e.LoadManifest()
	if err != nil {
		return nil, err
	}

	missing := []string{}

	for _, asset := range manifest.Assets {
		content, err := ioutil.ReadFile(filepath.Join(e.dir, asset.Path))
		if err != nil || assetSum(string(content)) != asset.SHA256 {
			missing = append(missing, asset.Path)
		}
	}

	return missing, nil
}

// InstallAssets writes the built-in UI assets into the environment and
// refreshes the manifest to match.
func (e *Env) InstallAssets() error {
	for _, asset := range builtinUIAssets {
		target := filepath.Join(e.dir, asset.Path)

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := ioutil.WriteFile(target, []byte(asset.Content), 0644); err != nil {
			return err
		}
	}

	return e.writeJSON(e.ManifestPath(), BuiltinManifest())
}

func assetSum(content string) string {
	sum := sha256.Sum256([]byte(content))

	return hex.EncodeToString(sum[:])
}
