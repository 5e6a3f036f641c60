package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/config"
	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/gateways/transport"
	"github.com/haukened/rr-dig/internal/dns/services/resolver"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "rr-dig"
)

// cliOptions holds one fully resolved invocation: configuration defaults
// overlaid with command line flags plus the name to query.
type cliOptions struct {
	server  string
	rrType  domain.RRType
	proto   transport.Proto
	timeout time.Duration
	bufSize int
	short   bool
	name    string
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseArgs(cfg, os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Cancel the in-flight query on Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, opts, os.Stdout))
}

// parseArgs resolves flags against the configured defaults and extracts the
// query name. Errors have already been reported to errOut when this returns.
func parseArgs(cfg *config.AppConfig, args []string, errOut io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	server := fs.String("server", cfg.Server, "DNS server to query, as host:port")
	rrType := fs.String("type", "A", "record type to query (A, AAAA, MX, TXT, ...)")
	proto := fs.String("proto", cfg.Proto, "transport protocol: udp or tcp")
	timeout := fs.Duration("timeout", cfg.Timeout, "query timeout when the context has no deadline")
	bufSize := fs.Int("bufsize", cfg.BufSize, "UDP receive buffer size in bytes")
	short := fs.Bool("short", false, "print record data only, one answer per line")

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [flags] NAME\n\n", appName)
		fmt.Fprintf(errOut, "Sends a DNS query for NAME and prints the response.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return cliOptions{}, fmt.Errorf("expected exactly one name to query, got %d arguments", fs.NArg())
	}

	qType := domain.ParseRRType(*rrType)
	if qType == 0 {
		fmt.Fprintf(errOut, "%s: unknown record type %q\n", appName, *rrType)
		return cliOptions{}, fmt.Errorf("unknown record type %q", *rrType)
	}

	return cliOptions{
		server:  *server,
		rrType:  qType,
		proto:   transport.Proto(strings.ToLower(*proto)),
		timeout: *timeout,
		bufSize: *bufSize,
		short:   *short,
		name:    fs.Arg(0),
	}, nil
}

// run executes the query described by opts and writes the result to out,
// returning the process exit code.
func run(ctx context.Context, opts cliOptions, out io.Writer) int {
	client, err := resolver.New(resolver.Options{
		Server:     opts.server,
		Proto:      opts.proto,
		Timeout:    opts.timeout,
		BufferSize: opts.bufSize,
		Logger:     log.GetLogger(),
	})
	if err != nil {
		log.Error(map[string]any{"error": err.Error()}, "Failed to create resolver")
		return 1
	}

	log.Debug(map[string]any{
		"version": version,
		"name":    opts.name,
		"type":    opts.rrType.String(),
		"server":  opts.server,
		"proto":   opts.proto,
	}, "Starting query")

	start := time.Now()

	if opts.short {
		answers, err := client.Resolve(ctx, opts.name, opts.rrType, resolver.QueryOptions{})
		if err != nil {
			log.Error(map[string]any{"error": err.Error()}, "Query failed")
			return 1
		}
		for _, data := range answers {
			fmt.Fprintln(out, data)
		}
		return 0
	}

	response, err := client.Query(ctx, opts.name, opts.rrType, resolver.QueryOptions{})
	if err != nil {
		log.Error(map[string]any{"error": err.Error()}, "Query failed")
		return 1
	}

	printResponse(out, response, opts, time.Since(start))
	return 0
}

// printResponse renders a decoded message in dig-style presentation form.
func printResponse(w io.Writer, msg domain.Message, opts cliOptions, elapsed time.Duration) {
	fmt.Fprintf(w, "; <<>> %s %s <<>> %s %s\n", appName, version, opts.name, opts.rrType)
	fmt.Fprintf(w, ";; ->>HEADER<<- opcode: %s, status: %s, id: %d\n",
		msg.Header.Flags.Opcode, msg.Header.Flags.RCode, msg.Header.ID)
	fmt.Fprintf(w, ";; flags: %s; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		flagString(msg.Header.Flags),
		len(msg.Questions), len(msg.Answers), len(msg.Authority), len(msg.Additional))

	if msg.Header.Flags.Truncated {
		fmt.Fprintln(w, ";; WARNING: response was truncated; retry with -proto tcp")
	}

	if len(msg.Questions) > 0 {
		fmt.Fprintln(w, "\n;; QUESTION SECTION:")
		for _, q := range msg.Questions {
			fmt.Fprintf(w, ";%s\n", q)
		}
	}

	printSection(w, "ANSWER", msg.Answers)
	printSection(w, "AUTHORITY", msg.Authority)
	printSection(w, "ADDITIONAL", msg.Additional)

	fmt.Fprintf(w, "\n;; Query time: %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, ";; SERVER: %s (%s)\n", opts.server, opts.proto)
}

// printSection renders one record section, skipped entirely when empty.
func printSection(w io.Writer, label string, records []domain.ResourceRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(w, "\n;; %s SECTION:\n", label)
	for _, rr := range records {
		fmt.Fprintln(w, rr)
	}
}

// flagString renders header flags the way dig does: lowercase mnemonics for
// each bit that is set.
func flagString(f domain.Flags) string {
	var flags []string
	if f.Response {
		flags = append(flags, "qr")
	}
	if f.Authoritative {
		flags = append(flags, "aa")
	}
	if f.Truncated {
		flags = append(flags, "tc")
	}
	if f.RecursionDesired {
		flags = append(flags, "rd")
	}
	if f.RecursionAvailable {
		flags = append(flags, "ra")
	}
	return strings.Join(flags, " ")
}
