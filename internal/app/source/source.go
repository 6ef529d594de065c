// Package source builds the viewer's scene from a network file or the
// built-in demo and rebuilds it when the file changes.
package source

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/corridor/internal/engine/scene"
	"github.com/Faultbox/corridor/internal/logger"
	"github.com/Faultbox/corridor/internal/network"
)

// DemoName names the built-in scene.
const DemoName = "demo"

// Source produces scenes. The zero value with an empty Path is the demo.
type Source struct {
	Path    string
	watcher *network.Watcher
	log     *zap.Logger
}

// Open prepares a source for path. An empty path selects the demo. With
// watch set, Reload reports rebuilt scenes after the file changes.
func Open(path string, watch bool) (*Source, error) {
	s := &Source{Path: path, log: logger.Named("source")}
	if path == "" || !watch {
		return s, nil
	}
	w, err := network.Watch(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	s.watcher = w
	s.log.Info("watching network file", zap.String("path", path))
	return s, nil
}

// Name is a short label for the HUD.
func (s *Source) Name() string {
	if s.Path == "" {
		return DemoName
	}
	return filepath.Base(s.Path)
}

// Watching reports whether the file is being watched.
func (s *Source) Watching() bool {
	return s.watcher != nil
}

// Build creates a fresh scene.
func (s *Source) Build() (*scene.Scene, error) {
	if s.Path == "" {
		sc := scene.Demo()
		s.log.Info("demo scene built", zap.Int("nodes", sc.NodeCount()))
		return sc, nil
	}

	n, err := network.Load(s.Path)
	if err != nil {
		return nil, err
	}
	for _, st := range n.Stats() {
		s.log.Info("graph loaded",
			zap.String("mode", string(st.Mode)),
			zap.Int("nodes", st.Nodes),
			zap.Int("edges", st.Edges),
			zap.Float32("length", st.TotalLength),
		)
	}

	sc, err := scene.FromNetwork(n)
	if err != nil {
		return nil, fmt.Errorf("build scene from %s: %w", s.Path, err)
	}
	s.log.Info("network scene built",
		zap.String("path", s.Path),
		zap.Int("nodes", sc.NodeCount()),
		zap.Int("edges", sc.EdgeCount()),
	)
	return sc, nil
}

// Reload rebuilds the scene if the watched file changed since the last
// call. It never blocks. On a failed rebuild the caller keeps its scene.
func (s *Source) Reload() (*scene.Scene, bool, error) {
	if s.watcher == nil || !s.watcher.Poll() {
		return nil, false, nil
	}
	sc, err := s.Build()
	if err != nil {
		return nil, false, err
	}
	return sc, true, nil
}

// Close stops watching.
func (s *Source) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
