package fuzzyhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_IdenticalContentProducesIdenticalDigest(t *testing.T) {
	h := New()
	content := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 40))

	d1 := h.Hash(content)
	d2 := h.Hash(content)
	assert.Equal(t, d1, d2)
}

func TestCompare_IdenticalContentScoresMax(t *testing.T) {
	h := New()
	content := []byte(strings.Repeat("hello world, this is a sample web page body. ", 50))

	digest := h.Hash(content)
	assert.Equal(t, 100, h.Compare(digest, digest))
}

func TestCompare_CompletelyDifferentContentScoresLow(t *testing.T) {
	h := New()
	a := h.Hash([]byte(strings.Repeat("aaaaaaaaaa bbbbbbbbbb cccccccccc ", 60)))
	b := h.Hash([]byte(strings.Repeat("zzzzzzzzzz yyyyyyyyyy xxxxxxxxxx ", 60)))

	assert.Less(t, h.Compare(a, b), 50)
}

func TestCompare_SimilarContentScoresHigherThanUnrelated(t *testing.T) {
	h := New()
	base := strings.Repeat("the homepage renders a login form and a footer. ", 50)
	similar := base + "one extra sentence appended at the end."
	unrelated := strings.Repeat("completely unrelated binary payload content here. ", 50)

	dBase := h.Hash([]byte(base))
	dSimilar := h.Hash([]byte(similar))
	dUnrelated := h.Hash([]byte(unrelated))

	similarScore := h.Compare(dBase, dSimilar)
	unrelatedScore := h.Compare(dBase, dUnrelated)
	assert.Greater(t, similarScore, unrelatedScore)
}

func TestCompare_MalformedDigestScoresZero(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Compare("not-a-digest", "also-not-a-digest"))
	assert.Equal(t, 0, h.Compare("3:abc:def", "garbage"))
}

func TestCompare_BlockSizeMoreThanOneDoublingApartScoresZero(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Compare("3:abc:def", "24:abc:def"))
}

func TestParseDigest_RoundTrip(t *testing.T) {
	h := New()
	digest := h.Hash([]byte(strings.Repeat("some content to hash ", 20)))
	bs, s1, s2, ok := parseDigest(digest)
	require.True(t, ok)
	assert.Greater(t, bs, 0)
	assert.NotPanics(t, func() { _ = s1 + s2 })
}

func TestLongestCommonSubstring(t *testing.T) {
	assert.Equal(t, 3, longestCommonSubstring("abcdef", "zzabcyy"))
	assert.Equal(t, 0, longestCommonSubstring("abc", "xyz"))
	assert.Equal(t, 5, longestCommonSubstring("hello", "hello"))
}

func TestHash_EmptyContent(t *testing.T) {
	h := New()
	digest := h.Hash(nil)
	bs, s1, s2, ok := parseDigest(digest)
	require.True(t, ok)
	assert.Greater(t, bs, 0)
	assert.Equal(t, "", s1)
	assert.Equal(t, "", s2)
}
