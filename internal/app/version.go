package app

import "mcpstarter/internal/domain"

// Version is the semantic version of mcpstarter, set at build time via -ldflags.
var Version = domain.ServerVersion

// Build is the git commit hash or build identifier, set at build time via -ldflags.
var Build = "dev"
