package capture

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mj1618/chatscribe/internal/model"
)

// CollectGeneric flattens every text and content description under root,
// in traversal order, for apps without a profile. It makes no attempt at
// attribution. texts holds the de-duplicated entries kept (at most
// model.MaxContextEntries, the most recent ones); raw joins them.
func CollectGeneric(root model.Node, logger *slog.Logger) (texts []string, raw string) {
	if root == nil {
		return nil, ""
	}
	if logger == nil {
		logger = slog.Default()
	}
	var parts []string
	collectTexts(root, 0, logger, &parts)

	texts = model.Distinct(parts)
	if len(texts) > model.MaxContextEntries {
		texts = texts[len(texts)-model.MaxContextEntries:]
	}
	return texts, model.BuildRawContext(texts, 0)
}

func collectTexts(n model.Node, depth int, logger *slog.Logger, parts *[]string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("subtree skipped", "depth", depth, "error", fmt.Errorf("%w: %v", model.ErrNodeAccess, r))
		}
	}()

	text := n.Text()
	if strings.TrimSpace(text) != "" {
		*parts = append(*parts, text)
	}
	if desc := n.ContentDescription(); strings.TrimSpace(desc) != "" && desc != text {
		*parts = append(*parts, desc)
	}

	for i := 0; i < n.ChildCount(); i++ {
		child, err := n.Child(i)
		if err != nil {
			logger.Warn("child skipped", "depth", depth+1, "index", i, "error", err)
			continue
		}
		if child != nil {
			collectTexts(child, depth+1, logger, parts)
		}
	}
}
