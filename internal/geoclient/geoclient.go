// Package geoclient implements capability.GeoIP over a local MaxMind GeoLite2
// country database via github.com/oschwald/geoip2-golang.
package geoclient

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Client wraps an open MaxMind database reader. It is safe for concurrent
// use by multiple scanner workers (the underlying reader is read-only after
// Open).
type Client struct {
	db *geoip2.Reader
}

// Open loads the country database at path (a GeoLite2-Country.mmdb file or
// compatible). The caller must call Close when scanning finishes.
func Open(path string) (*Client, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoclient: open %s: %w", path, err)
	}
	return &Client{db: db}, nil
}

// Close releases the underlying memory-mapped database file.
func (c *Client) Close() error {
	return c.db.Close()
}

// Country resolves ip to its registered country name in English, or "" if
// the database has no entry for it.
func (c *Client) Country(ip net.IP) (string, error) {
	record, err := c.db.Country(ip)
	if err != nil {
		return "", fmt.Errorf("geoclient: lookup %s: %w", ip, err)
	}
	if name := record.Country.Names["en"]; name != "" {
		return name, nil
	}
	return record.RegisteredCountry.Names["en"], nil
}
