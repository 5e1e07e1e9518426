package geoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Open's success path requires a real MaxMind .mmdb file, which is a
// licensed, separately-distributed database not part of this repository.
// Only the failure path is exercised here; Country is not tested (the
// internal/scanner tests use a fakeGeoIP capability in place of Client).
func TestOpen_MissingDatabaseFile(t *testing.T) {
	_, err := Open("/nonexistent/GeoLite2-Country.mmdb")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "geoclient")
}
