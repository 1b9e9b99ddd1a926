// Command dq issues a single DNS query against a resolver and prints the
// response, the way `dig` does for everyday troubleshooting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dnsscience/dnsquery/internal/config"
	"github.com/dnsscience/dnsquery/internal/dnsmsg"
	"github.com/dnsscience/dnsquery/internal/exchange"
	"github.com/dnsscience/dnsquery/internal/metrics"
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/rdata"
	"github.com/dnsscience/dnsquery/internal/transport"
)

var (
	resolverFlag  = flag.String("resolver", "", "resolver address or URL (default: 1.1.1.1:53)")
	transportFlag = flag.String("transport", "", "udp, tcp, tls, or https (default: udp)")
	typeFlag      = flag.String("type", "A", "query type (A, AAAA, MX, TXT, ...)")
	classFlag     = flag.String("class", "IN", "query class")
	timeoutFlag   = flag.Duration("timeout", 0, "per-exchange timeout (default: 5s)")
	dnssecFlag    = flag.Bool("dnssec", false, "set the DNSSEC OK bit and request signed records")
	cookieFlag    = flag.Bool("cookie", false, "attach a client EDNS0 COOKIE option")
	recurseFlag   = flag.Bool("recurse", true, "set the Recursion Desired bit")
	configFlag    = flag.String("config", "", "path to a YAML defaults file")
	ipFlag        = flag.String("ip", "any", "address family preference: any, 4, or 6")
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dq [flags] <name> [type] [class]")
		os.Exit(2)
	}

	cfg, resolver, transportMode, qtype, qclass, timeout, err := resolveSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dq: %v\n", err)
		os.Exit(2)
	}

	qname, err := name.FromString(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dq: invalid name %q: %v\n", flag.Arg(0), err)
		os.Exit(2)
	}

	query, err := exchange.BuildQuery(qname, qtype, qclass, exchange.Config{
		RecursionDesired: *recurseFlag,
		DNSSEC:           cfg.DNSSEC || *dnssecFlag,
		Cookie:           cfg.Cookie || *cookieFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dq: building query: %v\n", err)
		os.Exit(1)
	}

	ipPref, err := parseIPPreference(*ipFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dq: %v\n", err)
		os.Exit(2)
	}

	t, fallback, err := openTransport(transportMode, resolver, timeout, ipPref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dq: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result, err := exchange.Run(ctx, t, query, fallback)
	elapsed := time.Since(start)
	if err != nil {
		metrics.Observe(transportMode.String(), outcomeFor(err), elapsed.Seconds(), false)
		fmt.Fprintf(os.Stderr, "dq: %v\n", err)
		os.Exit(1)
	}
	metrics.Observe(result.Transport.String(), metrics.OutcomeOK, elapsed.Seconds(), result.Retried)

	printResult(result)
}

func resolveSettings() (config.File, string, transport.Mode, uint16, uint16, time.Duration, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return cfg, "", 0, 0, 0, 0, fmt.Errorf("loading config: %w", err)
	}

	resolver := *resolverFlag
	if resolver == "" {
		resolver = cfg.Resolver
	}
	if resolver == "" {
		resolver = "1.1.1.1:53"
	}

	transportName := *transportFlag
	if transportName == "" {
		transportName = cfg.Transport
	}
	mode, err := parseTransportMode(transportName)
	if err != nil {
		return cfg, "", 0, 0, 0, 0, err
	}

	typeName := strings.ToUpper(optionalArg(1, *typeFlag))
	qtype, ok := rdata.TypeByName(typeName)
	if !ok {
		code, err := strconv.ParseUint(strings.TrimPrefix(typeName, "TYPE"), 10, 16)
		if err != nil {
			return cfg, "", 0, 0, 0, 0, fmt.Errorf("unknown query type %q", optionalArg(1, *typeFlag))
		}
		qtype = uint16(code)
	}
	qclass, err := parseClass(optionalArg(2, *classFlag))
	if err != nil {
		return cfg, "", 0, 0, 0, 0, err
	}

	timeout := *timeoutFlag
	if timeout == 0 {
		timeout = cfg.Timeout()
	}

	return cfg, resolver, mode, qtype, qclass, timeout, nil
}

func optionalArg(i int, fallback string) string {
	if flag.NArg() > i {
		return flag.Arg(i)
	}
	return fallback
}

func parseTransportMode(s string) (transport.Mode, error) {
	switch strings.ToLower(s) {
	case "", "udp":
		return transport.ModeUDP, nil
	case "tcp":
		return transport.ModeTCP, nil
	case "tls", "dot":
		return transport.ModeDoT, nil
	case "https", "doh":
		return transport.ModeDoH, nil
	default:
		return 0, fmt.Errorf("unknown transport %q", s)
	}
}

func parseClass(s string) (uint16, error) {
	switch strings.ToUpper(s) {
	case "IN":
		return dnsmsg.ClassIN, nil
	case "CH":
		return dnsmsg.ClassCH, nil
	case "HS":
		return dnsmsg.ClassHS, nil
	case "ANY":
		return dnsmsg.ClassANY, nil
	default:
		return 0, fmt.Errorf("unknown class %q", s)
	}
}

func openTransport(mode transport.Mode, resolver string, timeout time.Duration, ipPref transport.IPPreference) (transport.Transport, transport.Transport, error) {
	switch mode {
	case transport.ModeUDP:
		udp, err := transport.NewUDPTransport(transport.UDPConfig{Endpoint: resolver, IPPreference: ipPref, Timeout: timeout})
		if err != nil {
			return nil, nil, err
		}
		tcp, err := transport.NewTCPTransport(transport.TCPConfig{Endpoint: resolver, IPPreference: ipPref, Timeout: timeout})
		if err != nil {
			return nil, nil, err
		}
		return udp, tcp, nil
	case transport.ModeTCP:
		tcp, err := transport.NewTCPTransport(transport.TCPConfig{Endpoint: resolver, IPPreference: ipPref, Timeout: timeout})
		return tcp, nil, err
	case transport.ModeDoT:
		// ServerName is left empty: the transport derives SNI from
		// resolver's host and suppresses it automatically for a literal
		// IP endpoint.
		dot, err := transport.NewDoTTransport(transport.DoTConfig{Endpoint: resolver, IPPreference: ipPref, Timeout: timeout})
		return dot, nil, err
	case transport.ModeDoH:
		doh, err := transport.NewDoHTransport(transport.DoHConfig{URL: resolver, Timeout: timeout})
		return doh, nil, err
	default:
		return nil, nil, fmt.Errorf("unsupported transport mode %v", mode)
	}
}

func parseIPPreference(s string) (transport.IPPreference, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return transport.PreferAny, nil
	case "4", "v4":
		return transport.PreferV4, nil
	case "6", "v6":
		return transport.PreferV6, nil
	default:
		return 0, fmt.Errorf("unknown ip preference %q", s)
	}
}

func outcomeFor(err error) metrics.Outcome {
	if strings.Contains(err.Error(), "timed out") {
		return metrics.OutcomeTimeout
	}
	return metrics.OutcomeError
}

func printResult(r *exchange.Result) {
	fmt.Println(r.Response.String())
	fmt.Printf(";; Query time: %d msec\n", r.RTT.Milliseconds())
	fmt.Printf(";; SERVER: %s (%s)\n", r.Peer, r.Transport)
	fmt.Printf(";; WHEN: %s\n", time.Now().Format(time.RFC1123Z))
	fmt.Printf(";; MSG SIZE  rcvd: %d\n", r.ReplySize)
	if r.Retried {
		fmt.Println(";; NOTE: retried over TCP after a truncated UDP response")
	}
}
