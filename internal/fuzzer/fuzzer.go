// Package fuzzer implements the domain permutation generator: a library of
// deterministic string-mutation strategies that emit a de-duplicated,
// validated candidate set for a single input domain.
package fuzzer

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// DefaultStrategies is the strategy set applied when the caller does not
// restrict the fuzzer list, mirroring the reference implementation's
// default (Dictionary and TLD-swap are opt-in expanders, not part of it).
var DefaultStrategies = []string{
	"addition", "bitsquatting", "homoglyph", "hyphenation",
	"insertion", "omission", "repetition", "replacement",
	"subdomain", "transposition", "vowel-swap",
}

// Generator produces and validates domain permutations for one input
// domain. It is not safe for concurrent use; build the full candidate set
// before handing it off to the queue.
type Generator struct {
	subdomain   string
	registrable string
	tld         string

	raw []*Candidate
}

// NewGenerator splits domain into (subdomain, registrable, tld) using a
// public-suffix oracle, falling back to the country-compound label list
// when the oracle cannot segment the domain into more than two labels.
func NewGenerator(domain string) (*Generator, error) {
	sub, reg, tld, err := splitDomain(domain)
	if err != nil {
		return nil, err
	}

	g := &Generator{subdomain: sub, registrable: reg, tld: tld}
	g.raw = append(g.raw, newCandidate("Original*", joinLabels(sub, reg, tld)))
	return g, nil
}

func splitDomain(domain string) (subdomain, registrable, tld string, err error) {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))

	if suffix, icann := publicsuffix.PublicSuffix(domain); icann && suffix != "" && suffix != domain {
		rest := strings.TrimSuffix(domain, "."+suffix)
		if rest != "" && rest != domain {
			parts := strings.Split(rest, ".")
			registrable = parts[len(parts)-1]
			subdomain = strings.Join(parts[:len(parts)-1], ".")
			tld = suffix
			return subdomain, registrable, tld, nil
		}
	}

	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("fuzzer: invalid domain name %q", domain)
	}
	if len(parts) == 2 {
		return "", parts[0], parts[1], nil
	}
	if countryCompoundLabels[parts[len(parts)-2]] {
		tld = strings.Join(parts[len(parts)-2:], ".")
		registrable = parts[len(parts)-3]
		subdomain = strings.Join(parts[:len(parts)-3], ".")
	} else {
		tld = parts[len(parts)-1]
		registrable = parts[len(parts)-2]
		subdomain = strings.Join(parts[:len(parts)-2], ".")
	}
	return subdomain, registrable, tld, nil
}

func joinLabels(labels ...string) string {
	kept := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, ".")
}

func (g *Generator) add(fuzzer string, registrables []string) {
	for _, r := range registrables {
		g.raw = append(g.raw, newCandidate(fuzzer, joinLabels(g.subdomain, r, g.tld)))
	}
}

// addFull appends results that already carry their own TLD shape (only
// Various, whose output replaces the registrable+TLD pair as a unit).
func (g *Generator) addFull(fuzzer string, fullLabels []string) {
	for _, r := range fullLabels {
		g.raw = append(g.raw, newCandidate(fuzzer, joinLabels(g.subdomain, r)))
	}
}

// Generate runs the named strategies (case-insensitive) against the
// registrable label and appends their output to the accumulated candidate
// set. An empty or nil list runs DefaultStrategies. Various is always
// applied, matching the reference implementation's unconditional TLD-shape
// variants.
func (g *Generator) Generate(strategies []string) {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}

	for _, s := range strategies {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "addition":
			g.add("Addition", g.addition())
		case "bitsquatting":
			g.add("Bitsquatting", g.bitsquatting())
		case "homoglyph":
			g.add("Homoglyph", g.homoglyph())
		case "hyphenation":
			g.add("Hyphenation", g.hyphenation())
		case "insertion":
			g.add("Insertion", g.insertion())
		case "omission":
			g.add("Omission", g.omission())
		case "repetition":
			g.add("Repetition", g.repetition())
		case "replacement":
			g.add("Replacement", g.replacement())
		case "subdomain":
			g.add("Subdomain", g.subdomainStrategy())
		case "transposition":
			g.add("Transposition", g.transposition())
		case "vowel-swap":
			g.add("Vowel-swap", g.vowelSwap())
		}
	}

	g.addFull("Various", g.various())
}

// Dictionary expands the candidate set using an externally-loaded word
// list: reg-W, regW, W-reg, Wreg for each word W.
func (g *Generator) Dictionary(words []string) {
	result := make([]string, 0, len(words)*4)
	for _, w := range words {
		result = append(result,
			g.registrable+"-"+w,
			g.registrable+w,
			w+"-"+g.registrable,
			w+g.registrable,
		)
	}
	g.add("Dictionary", result)
}

// TLDSwap expands the candidate set by replacing the TLD with each entry
// in an externally-loaded TLD list, excluding the input's own TLD.
func (g *Generator) TLDSwap(tlds []string) {
	for _, tld := range tlds {
		if tld == g.tld {
			continue
		}
		g.raw = append(g.raw, newCandidate("TLD-swap", joinLabels(g.subdomain, g.registrable, tld)))
	}
}

// Finalize walks the accumulated candidate list once, IDNA-normalizes and
// syntactically validates each domain name, drops invalid or duplicate
// entries, and returns the result preserving first-seen order (which keeps
// Original* at index 0).
func (g *Generator) Finalize() []*Candidate {
	seen := make(map[string]bool, len(g.raw))
	out := make([]*Candidate, 0, len(g.raw))

	for _, c := range g.raw {
		ascii, ok := validateDomain(c.Domain)
		if !ok {
			continue
		}
		if seen[ascii] {
			continue
		}
		seen[ascii] = true
		c.ASCII = ascii
		out = append(out, c)
	}
	return out
}

// validSyntax is the ASCII-wire-form structural check: 1-63 char LDH labels
// (no leading/trailing hyphen) followed by a 2-63 char alphabetic TLD,
// 4-253 chars overall. Go's RE2 engine has no lookaround, so this is
// expressed as explicit label-by-label validation instead of the
// lookahead/lookbehind regex the reference implementation uses.
func validSyntax(d string) bool {
	trimmed := strings.TrimSuffix(d, ".")
	if len(d) < 4 || len(d) > 253 {
		return false
	}
	labels := strings.Split(trimmed, ".")
	if len(labels) < 2 {
		return false
	}
	for i, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
		last := i == len(labels)-1
		if last {
			if len(label) < 2 {
				return false
			}
			for _, r := range label {
				if !isASCIIAlpha(r) {
					return false
				}
			}
			continue
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !isASCIIAlpha(r) && !isASCIIDigit(r) && r != '-' {
				return false
			}
		}
	}
	return true
}

func isASCIIAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// validateDomain IDNA-encodes domain and validates it: encoding must
// succeed, must not silently change length while still differing (catches
// mixed-script artifacts), and the ASCII form must pass validSyntax.
func validateDomain(domain string) (ascii string, ok bool) {
	a, err := idna.ToASCII(domain)
	if err != nil {
		return "", false
	}
	if len(domain) == len(a) && domain != a {
		return "", false
	}
	if !validSyntax(a) {
		return "", false
	}
	return a, true
}
