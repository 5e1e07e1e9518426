// Package wordlist loads the dictionary and TLD files consumed by the
// fuzzer's Dictionary and TLD-swap expanders. It only knows the file
// format; the fuzzer package decides how the words are used.
package wordlist

import (
	"bufio"
	"os"
	"strings"
)

// Load reads one token per line, keeping only ASCII-letter tokens and
// deduplicating while preserving first-seen order.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	var out []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || !isAlpha(word) || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}
