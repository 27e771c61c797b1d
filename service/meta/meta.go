// Package meta loads YAML documents from any afs-addressable location
// (file, mem, s3, gs, ...), expanding ${env.KEY} expressions before
// decoding. The scheduler uses it to populate its Config from host-managed
// settings the same way workflow engines load their definitions.
package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service resolves and decodes documents relative to an optional base URL.
type Service struct {
	fs      afs.Service
	baseURL string
}

// New creates a meta service. baseURL may be empty, in which case locations
// are used as-is.
func New(fs afs.Service, baseURL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL}
}

// Load downloads the document at location, expands environment
// expressions and decodes the YAML into target.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	URL := s.resolve(location)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", URL, err)
	}
	expanded := ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}

func (s *Service) resolve(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || strings.HasPrefix(location, "/") {
		return location
	}
	return url.Join(s.baseURL, location)
}
