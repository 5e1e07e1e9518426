package fuzzer

import (
	"strings"
)

func (g *Generator) addition() []string {
	d := g.registrable
	result := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		result = append(result, d+string(c))
	}
	return result
}

func (g *Generator) bitsquatting() []string {
	d := g.registrable
	masks := []byte{1, 2, 4, 8, 16, 32, 64, 128}
	var result []string
	for i := 0; i < len(d); i++ {
		c := d[i]
		for _, mask := range masks {
			b := c ^ mask
			if (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || b == '-' {
				result = append(result, d[:i]+string(b)+d[i+1:])
			}
		}
	}
	return result
}

// homoglyph applies the confusable substitution table in two passes,
// allowing compounded substitutions (a->a-with-grave then o->o-with-acute)
// while keeping each pass's output deduplicated before taking the union.
func (g *Generator) homoglyph() []string {
	pass1 := homoglyphPass(g.registrable)

	pass2 := make(map[string]bool)
	for d := range pass1 {
		for out := range homoglyphPass(d) {
			pass2[out] = true
		}
	}

	union := make(map[string]bool, len(pass1)+len(pass2))
	for d := range pass1 {
		union[d] = true
	}
	for d := range pass2 {
		union[d] = true
	}

	result := make([]string, 0, len(union))
	for d := range union {
		result = append(result, d)
	}
	return result
}

func homoglyphPass(domain string) map[string]bool {
	runes := []rune(domain)
	n := len(runes)
	result := make(map[string]bool)

	for ws := 1; ws < n; ws++ {
		for i := 0; i <= n-ws; i++ {
			win := string(runes[i : i+ws])
			for j := 0; j < ws; j++ {
				c := []rune(win)[j]
				reps, ok := homoglyphs[c]
				if !ok {
					continue
				}
				for _, g := range reps {
					replaced := strings.ReplaceAll(win, string(c), g)
					result[string(runes[:i])+replaced+string(runes[i+ws:])] = true
				}
			}
		}
	}
	return result
}

func (g *Generator) hyphenation() []string {
	d := g.registrable
	var result []string
	for i := 1; i < len(d); i++ {
		result = append(result, d[:i]+"-"+d[i:])
	}
	return result
}

func (g *Generator) insertion() []string {
	d := g.registrable
	seen := make(map[string]bool)
	for i := 1; i < len(d)-1; i++ {
		for _, kb := range keyboards {
			neighbors, ok := kb[d[i]]
			if !ok {
				continue
			}
			for _, n := range neighbors {
				seen[d[:i]+string(n)+string(d[i])+d[i+1:]] = true
				seen[d[:i]+string(d[i])+string(n)+d[i+1:]] = true
			}
		}
	}
	return keys(seen)
}

func (g *Generator) omission() []string {
	d := g.registrable
	seen := make(map[string]bool)
	for i := 0; i < len(d); i++ {
		seen[d[:i]+d[i+1:]] = true
	}

	// Collapse runs of a repeated character to one (what `(.)\1+` -> `\1`
	// does; Go's RE2 engine has no backreferences).
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		if i == 0 || d[i] != d[i-1] {
			b.WriteByte(d[i])
		}
	}
	if collapsed := b.String(); collapsed != d {
		seen[collapsed] = true
	}

	return keys(seen)
}

func (g *Generator) repetition() []string {
	d := g.registrable
	seen := make(map[string]bool)
	for i := 0; i < len(d); i++ {
		if isASCIIAlpha(rune(d[i])) {
			seen[d[:i]+string(d[i])+string(d[i])+d[i+1:]] = true
		}
	}
	return keys(seen)
}

func (g *Generator) replacement() []string {
	d := g.registrable
	seen := make(map[string]bool)
	for i := 0; i < len(d); i++ {
		for _, kb := range keyboards {
			neighbors, ok := kb[d[i]]
			if !ok {
				continue
			}
			for _, n := range neighbors {
				seen[d[:i]+string(n)+d[i+1:]] = true
			}
		}
	}
	return keys(seen)
}

func (g *Generator) subdomainStrategy() []string {
	d := g.registrable
	var result []string
	for i := 1; i < len(d); i++ {
		if d[i] != '-' && d[i] != '.' && d[i-1] != '-' && d[i-1] != '.' {
			result = append(result, d[:i]+"."+d[i:])
		}
	}
	return result
}

func (g *Generator) transposition() []string {
	d := g.registrable
	var result []string
	for i := 0; i < len(d)-1; i++ {
		if d[i] != d[i+1] {
			result = append(result, d[:i]+string(d[i+1])+string(d[i])+d[i+2:])
		}
	}
	return result
}

func (g *Generator) vowelSwap() []string {
	d := g.registrable
	const vowels = "aeiou"
	seen := make(map[string]bool)
	for i := 0; i < len(d); i++ {
		if !strings.ContainsRune(vowels, rune(d[i])) {
			continue
		}
		for _, v := range vowels {
			if byte(v) == d[i] {
				continue
			}
			seen[d[:i]+string(v)+d[i+1:]] = true
		}
	}
	return keys(seen)
}

// various produces TLD-shape variants. The multi-label branch concatenates
// the registrable with the TLD string verbatim (the TLD's own internal dot
// becomes the only separator), which is what reproduces "ab.co.uk" ->
// "abco.uk" from the reference fuzzer.
func (g *Generator) various() []string {
	d := g.registrable
	tld := g.tld
	var result []string

	if strings.Contains(tld, ".") {
		labels := strings.Split(tld, ".")
		result = append(result, d+"."+labels[len(labels)-1])
		result = append(result, d+tld)
	} else {
		result = append(result, d+tld+"."+tld)
		if tld != "com" {
			result = append(result, d+"-"+tld+".com")
		}
	}

	return result
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
