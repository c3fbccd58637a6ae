package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// WhoisSection is the raw response of one WHOIS server in a lookup chain.
type WhoisSection struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// ErrWhoisResponseTooLarge is returned when a server answers with more than the client accepts.
var ErrWhoisResponseTooLarge = errors.New("whois response too large")

type WhoisError struct {
	Domain string
	Err    error
	Server string
}

func (e *WhoisError) Error() string {
	return fmt.Sprintf("whois lookup failed for %s via %s: %v", e.Domain, e.Server, e.Err)
}

func (e *WhoisError) Unwrap() error {
	return e.Err
}

const (
	defaultWhoisPort     = "43"
	defaultWhoisServer   = "whois.iana.org"
	defaultMaxReferrals  = 2
	maxWhoisResponseSize = 1 << 20
)

// WhoisServers maps TLDs to their registry WHOIS servers.
// TLDs not listed start the chain at IANA, which refers to the registry.
var WhoisServers = map[string]string{
	"com":  "whois.verisign-grs.com",
	"net":  "whois.verisign-grs.com",
	"org":  "whois.pir.org",
	"info": "whois.afilias.net",
	"biz":  "whois.nic.biz",
	"io":   "whois.nic.io",
	"dev":  "whois.nic.google",
	"app":  "whois.nic.google",
	"uk":   "whois.nic.uk",
	"de":   "whois.denic.de",
	"au":   "whois.auda.org.au",
}

var referralPattern = regexp.MustCompile(`(?im)^[ \t]*(?:refer|whois|registrar whois server|referralserver)[ \t]*:[ \t]*(\S+)[ \t]*$`)

// DialFunc opens a connection to a WHOIS server address of the form host:port.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// WhoisClient queries WHOIS servers over TCP port 43 and follows referrals
// from the registry to the registrar server.
type WhoisClient struct {
	servers        map[string]string
	server         string
	followReferral bool
	maxReferrals   int
	readTimeout    time.Duration
	maxResponse    int64
	dial           DialFunc
	logger         *slog.Logger
}

// WhoisOption configures a WhoisClient.
type WhoisOption func(*WhoisClient)

// WithWhoisServer pins every lookup to start at server instead of the TLD table.
func WithWhoisServer(server string) WhoisOption {
	return func(c *WhoisClient) {
		c.server = server
	}
}

// WithWhoisServers replaces the TLD to server table.
func WithWhoisServers(servers map[string]string) WhoisOption {
	return func(c *WhoisClient) {
		if servers != nil {
			c.servers = servers
		}
	}
}

// WithReferrals toggles referral following and caps the number of hops after the first server.
func WithReferrals(follow bool, maxHops int) WhoisOption {
	return func(c *WhoisClient) {
		c.followReferral = follow
		if maxHops > 0 {
			c.maxReferrals = maxHops
		}
	}
}

// WithWhoisTimeouts sets the dial and per-server read timeouts.
func WithWhoisTimeouts(dial, read time.Duration) WhoisOption {
	return func(c *WhoisClient) {
		if dial > 0 {
			d := &net.Dialer{Timeout: dial}
			c.dial = d.DialContext
		}
		if read > 0 {
			c.readTimeout = read
		}
	}
}

// WithWhoisDialer overrides how server connections are opened.
func WithWhoisDialer(dial DialFunc) WhoisOption {
	return func(c *WhoisClient) {
		if dial != nil {
			c.dial = dial
		}
	}
}

func WithWhoisLogger(logger *slog.Logger) WhoisOption {
	return func(c *WhoisClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewWhoisClient(opts ...WhoisOption) *WhoisClient {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	c := &WhoisClient{
		servers:        WhoisServers,
		followReferral: true,
		maxReferrals:   defaultMaxReferrals,
		readTimeout:    15 * time.Second,
		maxResponse:    maxWhoisResponseSize,
		dial:           dialer.DialContext,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup queries the WHOIS chain for name. Each server that answered with a
// non-empty body contributes one section, labelled by server, in contact order.
// Internationalised names are queried in their ASCII (punycode) form.
// A failure on the first server is returned; a failed referral ends the chain
// and the sections gathered so far are returned.
func (c *WhoisClient) Lookup(ctx context.Context, name string) ([]WhoisSection, error) {
	name, err := queryName(name)
	if err != nil {
		return nil, err
	}

	server := c.initialServer(name)
	visited := map[string]bool{}
	var sections []WhoisSection

	for hop := 0; server != "" && hop <= c.maxReferrals; hop++ {
		visited[server] = true

		raw, err := c.query(ctx, name, server)
		if err != nil {
			if hop == 0 {
				return nil, &WhoisError{Domain: name, Err: err, Server: server}
			}
			c.logger.WarnContext(ctx, "whois referral failed",
				slog.String("domain", name),
				slog.String("server", server),
				slog.Any("error", err))
			break
		}
		if strings.TrimSpace(raw) != "" {
			sections = append(sections, WhoisSection{Label: server, Text: raw})
		}

		if !c.followReferral {
			break
		}
		next := extractReferral(raw)
		if next == "" || visited[next] {
			break
		}
		server = next
	}

	return sections, nil
}

// queryName turns name into the single ASCII line sent to a WHOIS server.
func queryName(name string) (string, error) {
	name = Normalize(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidDomain)
	}
	if strings.ContainsAny(name, "\r\n") {
		return "", fmt.Errorf("%w %q: line break in name", ErrInvalidDomain, name)
	}
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDomain, name, err)
	}
	return ascii, nil
}

func (c *WhoisClient) initialServer(name string) string {
	if c.server != "" {
		return c.server
	}
	tld := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		tld = name[i+1:]
	}
	if server, ok := c.servers[tld]; ok {
		return server
	}
	return defaultWhoisServer
}

func (c *WhoisClient) query(ctx context.Context, name, server string) (string, error) {
	address := server
	if _, _, err := net.SplitHostPort(server); err != nil {
		address = net.JoinHostPort(server, defaultWhoisPort)
	}

	conn, err := c.dial(ctx, "tcp", address)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// Closing the connection unblocks the read when the caller goes away.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	deadline := time.Now().Add(c.readTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return "", fmt.Errorf("set deadline: %w", err)
	}

	if _, err := io.WriteString(conn, name+"\r\n"); err != nil {
		return "", fmt.Errorf("write failed: %w", err)
	}

	body, err := io.ReadAll(io.LimitReader(conn, c.maxResponse+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("read failed: %w", err)
	}
	if int64(len(body)) > c.maxResponse {
		return "", fmt.Errorf("%w: more than %d bytes", ErrWhoisResponseTooLarge, c.maxResponse)
	}

	return strings.ReplaceAll(string(body), "\r\n", "\n"), nil
}

// extractReferral returns the next WHOIS host named in a response, if any.
func extractReferral(raw string) string {
	matches := referralPattern.FindAllStringSubmatch(raw, -1)
	for _, m := range matches {
		host := strings.ToLower(strings.TrimSpace(m[1]))
		for _, scheme := range []string{"whois://", "rwhois://"} {
			host = strings.TrimPrefix(host, scheme)
		}
		host = strings.TrimSuffix(host, "/")
		if host == "" || strings.Contains(host, "/") {
			continue
		}
		return host
	}
	return ""
}
