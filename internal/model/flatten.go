package model

import (
	"fmt"
	"log/slog"
	"strings"
)

// TextObservation is one non-blank text leaf seen during traversal, with
// the positional and structural hints the heuristics work from.
type TextObservation struct {
	Y                int    `yaml:"y"            json:"y"`
	X                int    `yaml:"x"            json:"x"`
	Width            int    `yaml:"w,omitempty"  json:"w,omitempty"`
	Height           int    `yaml:"h,omitempty"  json:"h,omitempty"`
	Identifier       string `yaml:"id,omitempty" json:"id,omitempty"`
	Class            string `yaml:"c,omitempty"  json:"c,omitempty"`
	Text             string `yaml:"t"            json:"t"`
	ParentIdentifier string `yaml:"pid,omitempty" json:"pid,omitempty"`
	ParentClass      string `yaml:"pc,omitempty"  json:"pc,omitempty"`
}

// Extract walks the tree under root and returns one observation per node
// with non-blank text, in traversal order. Identifier and class are
// inherited from the nearest ancestor that has one when a node has none.
//
// A failure reading a child (error or panic from the host accessor) drops
// only that subtree; the rest of the walk continues. No Node escapes the call.
func Extract(root Node, logger *slog.Logger) []TextObservation {
	if root == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	var result []TextObservation
	extractRecursive(root, "", "", 0, logger, &result)
	return result
}

func extractRecursive(n Node, parentID, parentClass string, depth int, logger *slog.Logger, result *[]TextObservation) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("subtree skipped", "depth", depth, "error", fmt.Errorf("%w: %v", ErrNodeAccess, r))
		}
	}()

	id := ShortIdentifier(n.Identifier())
	class := ShortClassName(n.ClassName())
	if id == "" {
		id = parentID
	}
	if class == "" {
		class = parentClass
	}

	if text := n.Text(); strings.TrimSpace(text) != "" {
		b := n.Bounds()
		*result = append(*result, TextObservation{
			Y:                b[1],
			X:                b[0],
			Width:            b[2],
			Height:           b[3],
			Identifier:       id,
			Class:            class,
			Text:             text,
			ParentIdentifier: parentID,
			ParentClass:      parentClass,
		})
	}

	for i := 0; i < n.ChildCount(); i++ {
		child, err := n.Child(i)
		if err != nil {
			logger.Warn("child skipped", "depth", depth+1, "index", i, "error", err)
			continue
		}
		if child == nil {
			continue
		}
		extractRecursive(child, id, class, depth+1, logger, result)
	}
}

// ShortIdentifier strips the package prefix from a resource identifier:
// "com.tencent.mobileqq:id/9u" becomes "9u".
func ShortIdentifier(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// ShortClassName strips the package from a class name:
// "android.widget.TextView" becomes "TextView".
func ShortClassName(class string) string {
	if i := strings.LastIndex(class, "."); i >= 0 {
		return class[i+1:]
	}
	return class
}
