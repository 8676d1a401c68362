// Package manifest records what a styleguide build read and wrote.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.json"

// NewBuildID returns a fresh random build identifier.
func NewBuildID() string {
	return uuid.NewString()
}

// BuildManifest represents a complete record of a build's inputs, plan, and outputs.
type BuildManifest struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Inputs    Inputs    `json:"inputs"`
	Plan      Plan      `json:"plan"`
	Outputs   Outputs   `json:"outputs"`
	Status    string    `json:"status"`
	Duration  int64     `json:"duration_ms"`
}

// Inputs captures all inputs to the build.
type Inputs struct {
	Sources    []SourceInput `json:"sources"`
	ConfigHash string        `json:"config_hash"`
}

// SourceInput is one scanned stylesheet.
type SourceInput struct {
	Path   string `json:"path"`
	Blocks int    `json:"blocks"`
}

// Plan captures how the build was configured to render.
type Plan struct {
	Mode        string `json:"mode"`
	BasePath    string `json:"base_path"`
	IndexSource string `json:"index_templates"`
	ItemSource  string `json:"item_templates"`
}

// PageEntry is one written item page.
type PageEntry struct {
	Path        string `json:"path"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	Line        int    `json:"line"`
	Fingerprint string `json:"fingerprint"`
}

// Outputs captures all outputs from the build.
type Outputs struct {
	Pages       []PageEntry `json:"pages"`
	Assets      []string    `json:"assets,omitempty"`
	ContentHash string      `json:"content_hash,omitempty"`
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest's inputs and plan. Two builds
// with the same hash read the same sources with the same configuration.
func (m *BuildManifest) Hash() (string, error) {
	hashInput := struct {
		Sources    []SourceInput `json:"sources"`
		ConfigHash string        `json:"config_hash"`
		Plan       Plan          `json:"plan"`
	}{
		Sources:    m.Inputs.Sources,
		ConfigHash: m.Inputs.ConfigHash,
		Plan:       m.Plan,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// HashValue returns the sha256 of v's JSON encoding. It is used for config hashes.
func HashValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// ComputeContentHash sets Outputs.ContentHash from the page fingerprints,
// independent of page order.
func (m *BuildManifest) ComputeContentHash() {
	prints := make([]string, 0, len(m.Outputs.Pages))
	for _, p := range m.Outputs.Pages {
		prints = append(prints, p.Path+"\x00"+p.Fingerprint)
	}
	sort.Strings(prints)

	h := sha256.New()
	for _, p := range prints {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	m.Outputs.ContentHash = fmt.Sprintf("%x", h.Sum(nil))
}

// Write stores the manifest as FileName in dir and returns the file path.
func (m *BuildManifest) Write(dir string) (string, error) {
	data, err := m.ToJSON()
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode manifest").Build()
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // public build output
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write manifest").
			WithContext("path", path).
			Build()
	}
	return path, nil
}

// Read loads a manifest written by Write.
func Read(dir string) (*BuildManifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured output directory
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read manifest").
			WithContext("path", path).
			Build()
	}
	return FromJSON(data)
}
