package chat

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"go.uber.org/zap"
)

// SourcesLabel precedes the list of documents an answer was built from
const SourcesLabel = "Documents looked up to obtain this answer: "

// formatAnswer renders the answer text followed by the documents it cites, if any
func formatAnswer(answer string, sources []string) string {
	if len(sources) == 0 {
		return answer
	}
	return answer + "\n\n" + SourcesLabel + strings.Join(sources, ", ")
}

// sourceDisplayNames returns the code-formatted base names of the documents
// behind an answer, deduplicated in first-seen order. Documents with the same
// base name in different folders collapse into one entry.
func sourceDisplayNames(nodes []entity.SourceNode) (names []string, skipped int) {
	seen := make(map[string]struct{}, len(nodes))

	for _, node := range nodes {
		ref, ok := documentRef(node.Metadata)
		if !ok {
			skipped++
			continue
		}

		base := ref[strings.LastIndex(ref, "/")+1:]
		if base == "" {
			skipped++
			continue
		}

		name := "`" + base + "`"
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, skipped
}

// documentRef takes metadata "path" when the key exists and "name" only when it does not.
// A present but empty or non-string path leaves the node without a reference.
func documentRef(metadata map[string]any) (string, bool) {
	raw, ok := metadata["path"]
	if !ok {
		raw = metadata["name"]
	}
	v, ok := raw.(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// renderResponse turns a chat response into assistant message text.
// Source list problems are logged and never fail the turn.
func renderResponse(ctx context.Context, resp *entity.ChatResponse) string {
	answer := ""
	if resp.Response != nil {
		answer = *resp.Response
	}

	switch {
	case !resp.SourceNodes.Present:
		ctxzap.Warn(ctx, "chat response has no source_nodes")
	case resp.SourceNodes.Malformed:
		ctxzap.Warn(ctx, "chat response source_nodes is not a list")
	}

	names, skipped := sourceDisplayNames(resp.SourceNodes.Nodes)
	if skipped += resp.SourceNodes.Skipped; skipped > 0 {
		ctxzap.Debug(ctx, "source nodes without a usable document reference skipped",
			zap.Int("skipped", skipped),
		)
	}

	return formatAnswer(answer, names)
}
