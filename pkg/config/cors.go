package config

import (
	"fmt"
	"net/url"
	"strings"
)

// CORSConfig holds the single origin allowed to make cross-origin requests.
// No wildcard and no multi-origin list: the value must match the frontend
// origin exactly.
type CORSConfig struct {
	Origin string `koanf:"origin"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  origin: %s\n", c.Origin))
	return b.String()
}

func (c *CORSConfig) Validate() error {
	if c.Origin == "" {
		return fmt.Errorf("CORS origin is not configured")
	}
	parsed, err := url.Parse(c.Origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("CORS origin must be an absolute URL: %s", c.Origin)
	}
	return nil
}
