package fuzzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		wantErr bool
	}{
		{name: "valid domain", domain: "example.com"},
		{name: "multi-label tld", domain: "ab.co.uk"},
		{name: "no tld", domain: "invalid", wantErr: true},
		{name: "empty", domain: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(tt.domain)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, g)
			require.Len(t, g.raw, 1)
			assert.Equal(t, "Original*", g.raw[0].Fuzzer)
		})
	}
}

func TestSplitDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantSub string
		wantReg string
		wantTLD string
	}{
		{domain: "example.com", wantReg: "example", wantTLD: "com"},
		{domain: "ab.co.uk", wantReg: "ab", wantTLD: "co.uk"},
		{domain: "www.example.com", wantSub: "www", wantReg: "example", wantTLD: "com"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			sub, reg, tld, err := splitDomain(tt.domain)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, sub)
			assert.Equal(t, tt.wantReg, reg)
			assert.Equal(t, tt.wantTLD, tld)
		})
	}
}

func TestGenerate_ExampleCom(t *testing.T) {
	g, err := NewGenerator("example.com")
	require.NoError(t, err)
	g.Generate(nil)
	candidates := g.Finalize()

	require.NotEmpty(t, candidates)
	assert.Equal(t, "Original*", candidates[0].Fuzzer)
	assert.Equal(t, "example.com", candidates[0].Domain)

	byFuzzer := make(map[string][]string)
	for _, c := range candidates {
		byFuzzer[c.Fuzzer] = append(byFuzzer[c.Fuzzer], c.Domain)
	}

	assert.Len(t, byFuzzer["Addition"], 26, "Addition should append each of a-z once")
	assert.Contains(t, byFuzzer["Transposition"], "xeample.com")
	assert.Contains(t, byFuzzer["Transposition"], "examlpe.com")
	assert.Contains(t, byFuzzer["Vowel-swap"], "ixample.com")
	assert.Contains(t, byFuzzer["Vowel-swap"], "examplo.com")
}

func TestGenerate_Various_MultiLabelTLD(t *testing.T) {
	g, err := NewGenerator("ab.co.uk")
	require.NoError(t, err)
	g.Generate(nil)
	candidates := g.Finalize()

	var various []string
	for _, c := range candidates {
		if c.Fuzzer == "Various" {
			various = append(various, c.Domain)
		}
	}
	assert.Contains(t, various, "ab.uk")
	assert.Contains(t, various, "abco.uk")
}

func TestGenerate_Homoglyph_IncludesConfusable(t *testing.T) {
	g, err := NewGenerator("google.com")
	require.NoError(t, err)
	g.Generate([]string{"homoglyph"})
	candidates := g.Finalize()

	found := false
	for _, c := range candidates {
		if c.Fuzzer == "Homoglyph" && strings.Contains(c.Domain, "ɡ") {
			found = true
		}
		if c.Fuzzer == "Homoglyph" {
			assert.NotEqual(t, "google.com", c.Domain, "homoglyph must not reproduce the original")
		}
	}
	assert.True(t, found, "expected a script-g homoglyph variant of google.com")
}

func TestFinalize_Dedup_And_OriginalUnique(t *testing.T) {
	g, err := NewGenerator("example.com")
	require.NoError(t, err)
	g.Generate(nil)
	candidates := g.Finalize()

	seen := make(map[string]bool)
	originals := 0
	for _, c := range candidates {
		assert.False(t, seen[c.ASCII], "duplicate ascii domain: %s", c.ASCII)
		seen[c.ASCII] = true
		if c.Fuzzer == "Original*" {
			originals++
		} else {
			assert.NotEqual(t, "example.com", c.Domain, "fuzzer %s re-emitted the original", c.Fuzzer)
		}
	}
	assert.Equal(t, 1, originals)
}

func TestDictionaryExpander(t *testing.T) {
	g, err := NewGenerator("example.com")
	require.NoError(t, err)
	g.Dictionary([]string{"secure"})
	candidates := g.Finalize()

	var dict []string
	for _, c := range candidates {
		if c.Fuzzer == "Dictionary" {
			dict = append(dict, c.Domain)
		}
	}
	assert.Contains(t, dict, "example-secure.com")
	assert.Contains(t, dict, "examplesecure.com")
	assert.Contains(t, dict, "secure-example.com")
	assert.Contains(t, dict, "secureexample.com")
}

func TestTLDSwapExpander(t *testing.T) {
	g, err := NewGenerator("example.com")
	require.NoError(t, err)
	g.TLDSwap([]string{"net", "org", "com"})
	candidates := g.Finalize()

	var swapped []string
	for _, c := range candidates {
		if c.Fuzzer == "TLD-swap" {
			swapped = append(swapped, c.Domain)
		}
	}
	assert.Contains(t, swapped, "example.net")
	assert.Contains(t, swapped, "example.org")
	assert.NotContains(t, swapped, "example.com", "own TLD must be excluded")
}

func TestValidSyntax(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{"example.com", true},
		{"a.com", false},
		{"-example.com", false},
		{"example-.com", false},
		{"ex.c", false},
		{strings.Repeat("a", 64) + ".com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validSyntax(tt.domain), tt.domain)
	}
}

func TestBitsquattingProducesSingleBitFlip(t *testing.T) {
	g, err := NewGenerator("example.com")
	require.NoError(t, err)
	results := g.bitsquatting()
	require.NotEmpty(t, results)

	for _, r := range results {
		diffCount := 0
		var xor byte
		a, b := []byte("example"), []byte(r)
		for i := 0; i < len(a) && i < len(b); i++ {
			if a[i] != b[i] {
				diffCount++
				xor = a[i] ^ b[i]
			}
		}
		require.Equal(t, 1, diffCount, "result %q should differ by exactly one byte", r)
		assert.True(t, xor != 0 && xor&(xor-1) == 0, "xor delta must be a power of two, got %d", xor)
	}
}
