package catalog

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// envExpander rewrites ${VAR} and ${VAR:-fallback} in string scalars.
type envExpander struct {
	lookup  func(string) (string, bool)
	missing map[string]struct{}
}

// expandItemsEnv substitutes environment references in an items document and
// reports the variables that were unset and had no fallback.
func expandItemsEnv(raw []byte) ([]byte, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse items: %w", err)
	}

	e := &envExpander{lookup: os.LookupEnv, missing: map[string]struct{}{}}
	e.walk(&doc)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, nil, fmt.Errorf("encode expanded items: %w", err)
	}
	if len(e.missing) == 0 {
		return out, nil, nil
	}
	return out, slices.Sorted(maps.Keys(e.missing)), nil
}

func (e *envExpander) walk(node *yaml.Node) {
	switch node.Kind {
	case yaml.MappingNode:
		// keys stay literal
		for i := 1; i < len(node.Content); i += 2 {
			e.walk(node.Content[i])
		}
	case yaml.AliasNode:
		if node.Alias != nil {
			e.walk(node.Alias)
		}
	case yaml.ScalarNode:
		if (node.Tag == "" || node.Tag == "!!str") && strings.Contains(node.Value, "$") {
			node.Value = os.Expand(node.Value, e.resolve)
			node.Tag = "!!str"
		}
	default:
		for _, child := range node.Content {
			e.walk(child)
		}
	}
}

func (e *envExpander) resolve(ref string) string {
	name, fallback, hasFallback := strings.Cut(ref, ":-")
	if val, ok := e.lookup(name); ok && val != "" {
		return val
	}
	if hasFallback {
		return fallback
	}
	if _, ok := e.lookup(name); !ok {
		e.missing[name] = struct{}{}
	}
	return ""
}
