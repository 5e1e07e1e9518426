package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/domaintwist/dnstwist/internal/formatter"
	"github.com/domaintwist/dnstwist/pkg/dnstwist"
)

const version = "1.0.0"

var options dnstwist.Options

var rootCmd = &cobra.Command{
	Use:     "dnstwist DOMAIN",
	Short:   "Detect look-alike domains that could be used to attack you",
	Long: `dnstwist generates a large number of permutations of a domain name and
checks each one for signs of life: DNS records, WHOIS registration dates,
GeoIP location, HTTP/SMTP banners, and fuzzy-hash similarity of served
content. Useful for finding typosquatting, phishing, and brand-abuse domains
before someone else finds them for you.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		options.Domain = args[0]
		return run(cmd)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
	os.Exit(255)
}

func run(cmd *cobra.Command) error {
	engine, err := dnstwist.New(options)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, notice := range engine.Notices {
		fmt.Fprintln(os.Stderr, notice)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if options.Format == "cli" {
		fmt.Fprintf(os.Stderr, "dnstwist %s analyzing %s\n", version, options.Domain)
	}

	var progressOut *os.File
	if options.Format == "cli" {
		progressOut = os.Stderr
	}

	var results dnstwist.Results
	if progressOut != nil {
		results, err = engine.Run(ctx, progressOut)
	} else {
		results, err = engine.Run(ctx, nil)
	}
	if err != nil {
		return err
	}

	f := formatter.New(results.Candidates(), options.All)
	if err := f.Write(os.Stdout, options.Format); err != nil {
		return err
	}

	if options.Format == "cli" {
		hits := 0
		for _, r := range results {
			if r.HasARecords() || r.HasNSRecords() || r.HasMXRecords() {
				hits++
			}
		}
		pct := 0.0
		if len(results) > 0 {
			pct = float64(hits) / float64(len(results)) * 100
		}
		fmt.Fprintf(os.Stderr, "%d hits (%.1f%%)\n", hits, pct)
	}

	return nil
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&options.All, "all", "a", false, "Print all DNS records instead of the first ones")
	flags.BoolVarP(&options.Banners, "banners", "b", false, "Determine HTTP and SMTP service banners")
	flags.StringVarP(&options.Dictionary, "dictionary", "", "", "Generate more domains using a dictionary file")
	flags.StringVarP(&options.Format, "format", "f", "cli", "Output format: cli, csv, json, idle")
	var fuzzers string
	flags.StringVarP(&fuzzers, "fuzzers", "", "", "Comma-separated list of fuzzing algorithms to use")
	flags.BoolVarP(&options.GeoIP, "geoip", "g", false, "Perform GeoIP location lookup")
	flags.StringVarP(&options.GeoIPDatabase, "geoip-database", "", "", "Path to a GeoLite2-Country.mmdb file")
	flags.BoolVarP(&options.MXCheck, "mxcheck", "m", false, "Check if an MX host accepts mail for the candidate")
	flags.BoolVarP(&options.Registered, "registered", "r", false, "Show only candidates with at least one resolved DNS record")
	flags.BoolVarP(&options.SSDeep, "ssdeep", "", false, "Compute fuzzy-hash similarity of served content")
	flags.IntVarP(&options.Threads, "threads", "t", 10, "Number of concurrent worker threads")
	flags.BoolVarP(&options.Whois, "whois", "w", false, "Look up WHOIS creation/update dates (forces --threads 1)")
	flags.StringSliceVarP(&options.TLD, "tld", "", nil, "Path to a TLD-swap word list (repeatable)")
	var nameservers []string
	flags.StringSliceVarP(&nameservers, "nameservers", "n", nil, "Comma-separated nameservers to query (host:port)")
	flags.StringVarP(&options.UserAgent, "useragent", "", "Mozilla/5.0 dnstwist/"+version, "User-Agent string for HTTP/SMTP probes")

	cobra.OnInitialize(func() {
		if fuzzers != "" {
			options.Fuzzers = strings.Split(fuzzers, ",")
		}
		options.Nameservers = nameservers
	})
}
