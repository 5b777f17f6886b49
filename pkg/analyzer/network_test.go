package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionItems(t *testing.T) {
	obj := map[string]any{
		"Adapters":  []any{map[string]any{"Name": "Ethernet"}},
		"ipconfig":  map[string]any{"Gateway": "10.0.0.1"},
		"DNS":       []any{"10.0.0.53"},
		"unrelated": []any{1, 2, 3},
	}

	assert.Len(t, sectionItems(obj, networkSections["adapters"]), 1)
	assert.Len(t, sectionItems(obj, networkSections["dns"]), 1)
	assert.Nil(t, sectionItems(obj, networkSections["connections"]))

	// object subsections are wrapped as a single item
	ip := sectionItems(map[string]any{"IPConfig": map[string]any{"Gateway": "g"}}, networkSections["ip_config"])
	require.Len(t, ip, 1)
}

func TestSectionItemsAliasPrecedence(t *testing.T) {
	// A payload carrying two spellings of the same subsection must
	// resolve to the first alias in declaration order every time.
	obj := map[string]any{
		"dns":        []any{"10.0.0.53"},
		"DNSServers": []any{"10.0.0.53", "10.0.0.54", "10.0.0.55"},
	}
	for i := 0; i < 20; i++ {
		items := sectionItems(obj, networkSections["dns"])
		require.Len(t, items, 1)
	}

	// A null subsection defers to a later alias that carries data.
	obj = map[string]any{
		"dns":        nil,
		"DNSServers": []any{"10.0.0.53", "10.0.0.54"},
	}
	assert.Len(t, sectionItems(obj, networkSections["dns"]), 2)
}

func TestNetworkAnalyzerBucketsSubsections(t *testing.T) {
	raw := []byte(`{
		"adapters": [{"Name": "Ethernet", "Status": "Up"}],
		"dns": ["10.0.0.53", "10.0.0.54"],
		"connections": []
	}`)
	doc, err := snapshot.NewDocument(category.Network, raw)
	require.NoError(t, err)

	client := &fakeCompleter{
		rules: []fakeRule{
			{contains: " group", response: `{"issues":[],"optimizations":[],"summary":"looks fine"}`},
			{contains: "Combine the following", response: "network healthy"},
		},
	}
	req := &Request{Doc: doc, Client: client, Model: "m"}

	a := &networkAnalyzer{}
	res, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	// adapters and dns have data, ip_config and connections are skipped
	var bucketCalls int
	for _, p := range client.calls {
		if strings.Contains(p, " group") {
			bucketCalls++
		}
	}
	assert.Equal(t, 2, bucketCalls)
	assert.Equal(t, "network healthy", res.Summary)
}
