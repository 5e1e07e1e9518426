// Package formatter renders an enriched candidate set into cli, csv, json,
// or idle output.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/domaintwist/dnstwist/internal/fuzzer"
)

const (
	colorReset  = "\x1b[0m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
)

// Formatter renders domains in one of the supported output shapes. all
// controls whether multi-value DNS fields are joined with ";" (true) or
// truncated to their first element (false).
type Formatter struct {
	domains []*fuzzer.Candidate
	all     bool
}

func New(domains []*fuzzer.Candidate, all bool) *Formatter {
	return &Formatter{domains: domains, all: all}
}

// Write renders format to w. An unknown format writes nothing and returns
// an error.
func (f *Formatter) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		return f.json(w)
	case "csv":
		return f.csv(w)
	case "idle":
		return f.idle(w)
	case "cli":
		return f.cli(w)
	default:
		return fmt.Errorf("formatter: unknown format %q", format)
	}
}

// json renders one object per candidate as a map rather than a fixed struct,
// since encoding/json always emits map keys in sorted order — matching the
// reference tool's `json.dumps(..., sort_keys=True)` output shape, which a
// fixed field-declaration-order struct can't reproduce. Empty fields are
// left out of the map entirely rather than relying on "omitempty" tags.
func (f *Formatter) json(w io.Writer) error {
	records := make([]map[string]any, 0, len(f.domains))
	for _, d := range f.domains {
		rec := map[string]any{
			"fuzzer":      d.Fuzzer,
			"domain-name": d.ASCII,
		}
		if v := field(d.DNS["A"]); v != nil {
			rec["dns-a"] = v
		}
		if v := field(d.DNS["AAAA"]); v != nil {
			rec["dns-aaaa"] = v
		}
		if v := field(d.DNS["NS"]); v != nil {
			rec["dns-ns"] = v
		}
		if v := field(d.DNS["MX"]); v != nil {
			rec["dns-mx"] = v
		}
		if d.GeoIP != "" {
			rec["geoip-country"] = d.GeoIP
		}
		if created := d.Whois["created"]; created != "" {
			rec["whois-created"] = created
		}
		if updated := d.Whois["updated"]; updated != "" {
			rec["whois-updated"] = updated
		}
		if banner := d.Banner["http"]; banner != "" {
			rec["banner-http"] = banner
		}
		if banner := d.Banner["smtp"]; banner != "" {
			rec["banner-smtp"] = banner
		}
		if d.MXSpy {
			rec["mx-spy"] = true
		}
		if score, ok := d.FuzzyHash["ssdeep"]; ok {
			rec["ssdeep-score"] = score
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(records)
}

func field(vs []string) any {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

func (f *Formatter) csv(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"fuzzer", "domain-name", "dns-a", "dns-aaaa", "dns-mx", "dns-ns",
		"geoip-country", "whois-created", "whois-updated", "ssdeep-score",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, d := range f.domains {
		ssdeep := ""
		if v, ok := d.FuzzyHash["ssdeep"]; ok {
			ssdeep = fmt.Sprintf("%d", v)
		}
		row := []string{
			d.Fuzzer,
			d.ASCII,
			f.joinField(d.DNS["A"]),
			f.joinField(d.DNS["AAAA"]),
			f.joinField(d.DNS["MX"]),
			f.joinField(d.DNS["NS"]),
			d.GeoIP,
			d.Whois["created"],
			d.Whois["updated"],
			ssdeep,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (f *Formatter) idle(w io.Writer) error {
	for _, d := range f.domains {
		if _, err := fmt.Fprintln(w, d.ASCII); err != nil {
			return err
		}
	}
	return nil
}

// joinField renders a multi-value DNS field per the --all rule: every value
// joined with ";" when all is set, otherwise just the first.
func (f *Formatter) joinField(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	if f.all {
		return strings.Join(vs, ";")
	}
	return vs[0]
}

func (f *Formatter) cli(w io.Writer) error {
	color := runtime.GOOS != "windows" && term.IsTerminal(fdOf(w))

	maxFuzzer, maxDomain := 0, 0
	for _, d := range f.domains {
		if len(d.Fuzzer) > maxFuzzer {
			maxFuzzer = len(d.Fuzzer)
		}
		if len(d.ASCII) > maxDomain {
			maxDomain = len(d.ASCII)
		}
	}

	for _, d := range f.domains {
		fmt.Fprintf(w, "%-*s %-*s ", maxFuzzer+2, d.Fuzzer, maxDomain+2, d.ASCII)

		var info []string
		if d.NXDomain {
			info = append(info, "-")
		} else {
			if a := f.joinField(d.DNS["A"]); a != "" {
				info = append(info, colorize(color, colorGreen, a))
			}
			if aaaa := f.joinField(d.DNS["AAAA"]); aaaa != "" {
				info = append(info, colorize(color, colorGreen, aaaa))
			}
			if ns := f.joinField(d.DNS["NS"]); ns != "" {
				info = append(info, colorize(color, colorYellow, "NS:"+ns))
			}
			if mx := f.joinField(d.DNS["MX"]); mx != "" {
				info = append(info, colorize(color, colorYellow, "MX:"+mx))
			}
			if d.MXSpy {
				info = append(info, colorize(color, colorRed, "SPYING-MX"))
			}
			if d.GeoIP != "" {
				info = append(info, "/"+d.GeoIP)
			}
			if created := d.Whois["created"]; created != "" {
				info = append(info, "Created:"+created)
			}
			if updated := d.Whois["updated"]; updated != "" {
				info = append(info, "Updated:"+updated)
			}
			if banner := d.Banner["http"]; banner != "" {
				info = append(info, "HTTP:"+banner)
			}
			if banner := d.Banner["smtp"]; banner != "" {
				info = append(info, "SMTP:"+banner)
			}
			if score, ok := d.FuzzyHash["ssdeep"]; ok {
				info = append(info, fmt.Sprintf("%d%%", score))
			}
		}

		if len(info) == 0 {
			info = append(info, "-")
		}
		if _, err := fmt.Fprintln(w, strings.Join(info, " ")); err != nil {
			return err
		}
	}
	return nil
}

func colorize(enabled bool, code, text string) string {
	if !enabled {
		return text
	}
	return code + text + colorReset
}

// fdOf returns the file descriptor backing w when it is an *os.File,
// otherwise a value term.IsTerminal reports false for.
func fdOf(w io.Writer) int {
	type fdProvider interface{ Fd() uintptr }
	if f, ok := w.(fdProvider); ok {
		return int(f.Fd())
	}
	return -1
}

// Hits reports how many candidates resolved any DNS field, for the
// trailing "N hits (P%)" summary line.
func Hits(domains []*fuzzer.Candidate) (hits, total int) {
	total = len(domains)
	for _, d := range domains {
		if d.HasAnyDNS() {
			hits++
		}
	}
	return hits, total
}

// SortByFuzzerThenDomain orders candidates for consumers that need a stable,
// reproducible output order: by fuzzer name, then by domain name.
func SortByFuzzerThenDomain(domains []*fuzzer.Candidate) {
	sort.SliceStable(domains, func(i, j int) bool {
		if domains[i].Fuzzer != domains[j].Fuzzer {
			return domains[i].Fuzzer < domains[j].Fuzzer
		}
		return domains[i].ASCII < domains[j].ASCII
	})
}
