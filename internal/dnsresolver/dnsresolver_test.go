package dnsresolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNXDomainError_Message(t *testing.T) {
	err := &NXDomainError{Domain: "example.com"}
	assert.Contains(t, err.Error(), "example.com")
	assert.Contains(t, err.Error(), "no such domain")
}

func TestServFailError_Message(t *testing.T) {
	err := &ServFailError{Domain: "example.com"}
	assert.Contains(t, err.Error(), "example.com")
	assert.Contains(t, err.Error(), "all nameservers failed")
}

func TestNewFull_DefaultsNameservers(t *testing.T) {
	r := NewFull(nil)
	assert.True(t, r.Full())
	assert.Equal(t, []string{"8.8.8.8:53"}, r.nameservers)
}

func TestNewFull_KeepsConfiguredNameservers(t *testing.T) {
	r := NewFull([]string{"1.1.1.1:53", "9.9.9.9:53"})
	assert.Equal(t, []string{"1.1.1.1:53", "9.9.9.9:53"}, r.nameservers)
}

func TestHostStub_Full(t *testing.T) {
	r := NewHostStub()
	assert.False(t, r.Full())
}

func TestHostStub_NSAndMXUnavailable(t *testing.T) {
	r := NewHostStub()
	_, err := r.LookupNS(context.Background(), "example.com")
	assert.Error(t, err)
	_, err = r.LookupMX(context.Background(), "example.com")
	assert.Error(t, err)
}

func TestHostStub_LookupAddrs_SplitsFamilies(t *testing.T) {
	r := NewHostStub()
	a, aaaa, err := r.lookupAddrs(context.Background(), "localhost")
	require.NoError(t, err)
	assert.True(t, len(a) > 0 || len(aaaa) > 0, "localhost should resolve to at least one address family")
}
