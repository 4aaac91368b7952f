package function

import (
	"context"
	"net"
	"strconv"
	"strings"

	"edd/internal/domain"

	"golang.org/x/sync/errgroup"
)

// resolver is the part of *net.Resolver the DNS functions use.
type resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
}

// DomainControllerFunction locates domain controllers through the
// _ldap._tcp.dc._msdcs SRV records of a domain.
type DomainControllerFunction struct {
	resolver resolver
}

func NewDomainControllerFunction() *DomainControllerFunction {
	return &DomainControllerFunction{resolver: net.DefaultResolver}
}

func (f *DomainControllerFunction) Name() string { return "GetDomainController" }
func (f *DomainControllerFunction) Description() string {
	return "Returns the domain controllers advertised in DNS for the given domain"
}
func (f *DomainControllerFunction) Usage() string { return "edd -f GetDomainController -d <domain>" }

func (f *DomainControllerFunction) Execute(ctx context.Context, args domain.Args) ([]string, error) {
	dom := strings.TrimSpace(args.DomainName)
	if dom == "" {
		return nil, domain.Failure("[-] Please provide a domain name with -d")
	}
	_, addrs, err := f.resolver.LookupSRV(ctx, "ldap", "tcp", "dc._msdcs."+dom)
	if err != nil {
		return nil, domain.Failuref("[-] Cannot locate domain controllers for %s: %w", dom, err)
	}
	lines := make([]string, 0, len(addrs))
	for _, a := range addrs {
		lines = append(lines, strings.TrimSuffix(a.Target, ".")+":"+strconv.Itoa(int(a.Port)))
	}
	return lines, nil
}

// ComputerIPFunction resolves one or more computer names to their addresses.
type ComputerIPFunction struct {
	resolver resolver
}

func NewComputerIPFunction() *ComputerIPFunction {
	return &ComputerIPFunction{resolver: net.DefaultResolver}
}

func (f *ComputerIPFunction) Name() string { return "GetComputerIP" }
func (f *ComputerIPFunction) Description() string {
	return "Resolves the IP addresses of one or more computers (comma separated)"
}
func (f *ComputerIPFunction) Usage() string {
	return "edd -f GetComputerIP -c <computer[,computer...]> [-t <threads>]"
}

func (f *ComputerIPFunction) Execute(ctx context.Context, args domain.Args) ([]string, error) {
	var hosts []string
	for _, h := range domain.SplitList(args.ComputerName) {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == 0 {
		return nil, domain.Failure("[-] Please provide a computer name with -c")
	}

	lines := make([]string, len(hosts))
	var g errgroup.Group
	g.SetLimit(max(args.Threads, 1))
	for i, host := range hosts {
		i, host := i, host
		g.Go(func() error {
			addrs, err := f.resolver.LookupHost(ctx, host)
			if err != nil || len(addrs) == 0 {
				lines[i] = host + ": unresolved"
				return nil
			}
			lines[i] = host + ": " + strings.Join(addrs, ", ")
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
