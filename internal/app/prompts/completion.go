package prompts

import (
	"context"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mcpstarter/internal/app/resources"
)

const maxCompletionValues = 100

var languages = []string{"c", "cpp", "csharp", "go", "java", "javascript", "kotlin", "python", "ruby", "rust", "swift", "typescript"}

// IDLister lists the IDs that complete the id variable of item://{id}.
type IDLister interface {
	IDs() []string
}

// Completer answers completion/complete for prompt arguments and resource
// template variables.
type Completer struct {
	items IDLister
}

func NewCompleter(items IDLister) *Completer {
	return &Completer{items: items}
}

// Complete is installed as the server's completion handler.
func (c *Completer) Complete(_ context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	if req == nil || req.Params == nil || req.Params.Ref == nil {
		return completion(nil), nil
	}
	return completion(c.Candidates(req.Params.Ref.Type, req.Params.Ref.Name, req.Params.Ref.URI, req.Params.Argument.Name, req.Params.Argument.Value)), nil
}

// Candidates returns the values of argument that start with prefix.
func (c *Completer) Candidates(refType, name, uri, argument, prefix string) []string {
	var pool []string
	switch refType {
	case "ref/prompt":
		pool = promptValues(name, argument)
	case "ref/resource":
		if uri == resources.ItemTemplateURI && argument == "id" && c.items != nil {
			pool = c.items.IDs()
		}
	}
	return filterPrefix(pool, prefix)
}

func promptValues(prompt, argument string) []string {
	switch {
	case prompt == "greet" && argument == "style":
		return sortedKeys(greetStyles)
	case prompt == "code_review" && argument == "focus":
		return sortedKeys(reviewFocus)
	case prompt == "code_review" && argument == "language":
		return languages
	default:
		return nil
	}
}

func filterPrefix(values []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.HasPrefix(strings.ToLower(v), prefix) {
			out = append(out, v)
		}
	}
	return out
}

func completion(values []string) *mcp.CompleteResult {
	if values == nil {
		values = []string{}
	}
	total := len(values)
	hasMore := false
	if total > maxCompletionValues {
		values = values[:maxCompletionValues]
		hasMore = true
	}
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values:  values,
			Total:   total,
			HasMore: hasMore,
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
