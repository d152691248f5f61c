package config

import (
	"strings"
	"time"
)

// Version is overridden at build time with -ldflags "-X menlo.ai/catalog-admin/config.Version=..."
var Version = "dev"
var EnvReloadedAt = time.Now()

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
