package config

import (
	"path/filepath"
	"strings"

	"github.com/cqroot/openstack-swift-exporter/internal/utils"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// RingPath returns the builder file path for a ring name
func (c *Config) RingPath(ring string) string {
	return filepath.Join(c.Swift.Dir, ring+utils.BuilderFileSuffix)
}

// MetricsEnabled reports whether a run-metrics textfile should be written
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.TextfilePath != ""
}
