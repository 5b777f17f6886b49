package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mchmarny/winspect/pkg/category"
)

// networkSections maps bucket names to the subsection keys they accept
// in the collected network object. Buckets are processed in
// networkBuckets order.
var (
	networkBuckets  = []string{"adapters", "ip_config", "dns", "connections"}
	networkSections = map[string][]string{
		"adapters":    {"adapters", "Adapters", "NetworkAdapters"},
		"ip_config":   {"ip_config", "ipConfig", "IPConfiguration", "IPConfig"},
		"dns":         {"dns", "DNS", "DNSServers", "dnsServers"},
		"connections": {"connections", "Connections", "ActiveConnections"},
	}
)

type networkAnalyzer struct{}

func (a *networkAnalyzer) Category() category.Category {
	return category.Network
}

func (a *networkAnalyzer) Analyze(ctx context.Context, req *Request) (*Result, error) {
	obj := req.Doc.Object()

	buckets := make([]Bucket, 0, len(networkBuckets))
	var metrics []string
	for _, name := range networkBuckets {
		items := sectionItems(obj, networkSections[name])
		buckets = append(buckets, Bucket{Name: name, Items: items})
		if len(items) > 0 {
			metrics = append(metrics, fmt.Sprintf("%s: %d entries", name, len(items)))
		}
	}

	return runChunked(ctx, req, "network", buckets, metrics), nil
}

// sectionItems extracts a subsection as a list, matching keys
// case-insensitively against the accepted aliases. Aliases are tried
// in declaration order so a payload carrying two spellings of the same
// subsection resolves deterministically. A scalar or object subsection
// is wrapped as a single item.
func sectionItems(obj map[string]any, aliases []string) []any {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, alias := range aliases {
		for _, key := range keys {
			if !strings.EqualFold(key, alias) {
				continue
			}
			switch v := obj[key].(type) {
			case nil:
				// Null subsection; a later alias may still carry data.
				continue
			case []any:
				return v
			default:
				return []any{v}
			}
		}
	}
	return nil
}
