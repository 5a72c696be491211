package cloudwatch

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Resolver resolves the endpoint host with the fastest of several DNS servers and
// caches the answer.
type Resolver struct {
	logger     *zap.Logger
	cacheTTL   time.Duration
	timeout    time.Duration
	udpServers []string
	tlsServers []string
	system     bool

	mutex sync.Mutex
	cache map[string]dnsCacheEntry
}

type dnsCacheEntry struct {
	ips []string
	ttl time.Time
}

// NewResolver creates a resolver from the DNS options of config. The system resolver
// always takes part in the race.
func NewResolver(config Config) *Resolver {
	config = config.withDefaults()
	return &Resolver{
		logger:     config.Logger,
		cacheTTL:   config.DNSCacheTTL,
		timeout:    config.DNSTimeout,
		udpServers: append([]string(nil), config.DNSUDPServers...),
		tlsServers: append([]string(nil), config.DNSTLSServers...),
		system:     true,
		cache:      make(map[string]dnsCacheEntry),
	}
}

// Lookup returns the IPv4 addresses of host, from cache when fresh.
func (r *Resolver) Lookup(ctx context.Context, host string) ([]string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []string{host}, nil
	}

	r.mutex.Lock()
	ce, ok := r.cache[host]
	r.mutex.Unlock()
	if ok && time.Now().Before(ce.ttl) {
		return ce.ips, nil
	}

	ips, err := r.resolveFastest(ctx, host)
	if err != nil {
		r.logger.Warn("DNS lookup failed", zap.String("host", host), zap.Error(err))
		return nil, err
	}

	r.mutex.Lock()
	r.cache[host] = dnsCacheEntry{ips: ips, ttl: time.Now().Add(r.cacheTTL)}
	r.mutex.Unlock()

	r.logger.Debug("DNS resolved", zap.String("host", host), zap.Strings("ips", ips))
	return ips, nil
}

// Flush drops every cached answer.
func (r *Resolver) Flush() {
	r.mutex.Lock()
	r.cache = make(map[string]dnsCacheEntry)
	r.mutex.Unlock()
}

// DialContext dials addr through the resolver; it fits http.Transport.DialContext.
func (r *Resolver) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ips, err := r.Lookup(ctx, host)
	if err != nil {
		return nil, err
	}

	var d net.Dialer
	var lastErr error
	for _, ip := range ips {
		conn, err := d.DialContext(ctx, network, net.JoinHostPort(ip, port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, eris.Wrapf(lastErr, "dialing %s", addr)
}

// resolveFastest queries all configured resolvers concurrently and returns first success
func (r *Resolver) resolveFastest(ctx context.Context, host string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		ips []string
		err error
	}
	attempts := len(r.udpServers) + len(r.tlsServers)
	if r.system {
		attempts++
	}
	if attempts == 0 {
		return nil, fmt.Errorf("no dns resolvers configured")
	}
	ch := make(chan result, attempts)

	for _, srv := range r.udpServers {
		go func(s string) {
			ips, err := exchange(ctx, host, s, "udp", r.timeout)
			ch <- result{ips, err}
		}(srv)
	}

	// DNS over TLS
	for _, srv := range r.tlsServers {
		go func(s string) {
			ips, err := exchange(ctx, host, s, "tcp-tls", r.timeout)
			ch <- result{ips, err}
		}(srv)
	}

	if r.system {
		go func() {
			netIPs, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
			ips := make([]string, 0, len(netIPs))
			for _, ip := range netIPs {
				ips = append(ips, ip.String())
			}
			ch <- result{ips, err}
		}()
	}

	var firstErr error
	for i := 0; i < attempts; i++ {
		select {
		case res := <-ch:
			if res.err == nil && len(res.ips) > 0 {
				return res.ips, nil
			}
			if firstErr == nil {
				firstErr = res.err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no dns result for %s", host)
	}
	return nil, firstErr
}

func exchange(ctx context.Context, host, server, network string, timeout time.Duration) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	c := &dns.Client{Net: network, Timeout: timeout}
	r, _, err := c.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, fmt.Errorf("%s dns %s failed: %w", network, server, err)
	}
	if r == nil || r.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%s dns %s failed: bad response", network, server)
	}
	ips := make([]string, 0, len(r.Answer))
	for _, ans := range r.Answer {
		if a, ok := ans.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return ips, nil
}
