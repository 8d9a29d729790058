package trie

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Render dumps the shape of the tree for tests and debugging, e.g.
// "(, (a), (b, (bo)))" for keys "a" and "bo". Each node shows the path
// leading to it. The format is not stable.
func Render[S constraints.Ordered](root *Node[S]) string {
	var sb strings.Builder
	render(&sb, root, "")
	return sb.String()
}

func render[S constraints.Ordered](sb *strings.Builder, n *Node[S], prefix string) {
	sb.WriteString("(")
	sb.WriteString(prefix)
	for _, sym := range n.Symbols() {
		sb.WriteString(", ")
		render(sb, n.children[sym], prefix+symbolString(sym))
	}
	sb.WriteString(")")
}

func symbolString[S constraints.Ordered](sym S) string {
	switch v := any(sym).(type) {
	case rune:
		return string(v)
	case byte:
		return string(rune(v))
	case string:
		return v
	}
	return fmt.Sprint(sym)
}
