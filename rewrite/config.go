package rewrite

import (
	"errors"
	"strings"
)

const (
	// IndexMarker is the query parameter the origin-response handler
	// appends to ask the viewer-request handler for the default object.
	IndexMarker = "cloudfrontindex=true"

	// DefaultObject is the default object served for "/" and missing
	// files.
	DefaultObject = "/index.html"

	branchLabel = "branch"
)

var (
	ErrMissingHostname      = errors.New("hostname is required")
	ErrInvalidDefaultObject = errors.New("default object must start with '/'")
)

type Config struct {
	// Hostname is the base hostname; branches are served from
	// <subdomain>.branch.<hostname>.
	Hostname string `conf:"hostname"`

	// DefaultObject is the path requested for "/" and on the retry after
	// a missing file.
	DefaultObject string `conf:"default_object"`
}

// BranchHost returns the identity provider callback host.
func (c Config) BranchHost() string {
	return branchLabel + "." + c.Hostname
}

// branchSuffix is the part of a host following the subdomain.
func (c Config) branchSuffix() string {
	return "." + c.BranchHost()
}

func (c Config) Validate() error {
	if c.Hostname == "" {
		return ErrMissingHostname
	}

	if !strings.HasPrefix(c.DefaultObject, "/") {
		return ErrInvalidDefaultObject
	}

	return nil
}
