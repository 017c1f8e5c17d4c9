package syntax

import (
	"fmt"
	"slices"
)

// NodeKind selects the variant of a Node.
type NodeKind uint8

const (
	KindDocument NodeKind = iota
	KindCommentSingleLine
	KindCommentMultiLine
	KindStringLiteral
	KindKeyword
	KindFunctionIdentifier
	KindPreprocessorDirective
	KindDeliminationExtended

	kindCount
)

var kindNames = [kindCount]string{
	KindDocument:              "Document",
	KindCommentSingleLine:     "CommentSingleLine",
	KindCommentMultiLine:      "CommentMultiLine",
	KindStringLiteral:         "StringLiteral",
	KindKeyword:               "Keyword",
	KindFunctionIdentifier:    "FunctionIdentifier",
	KindPreprocessorDirective: "PreprocessorDirective",
	KindDeliminationExtended:  "DeliminationExtended",
}

func (k NodeKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// HasChildren reports whether nodes of this kind may carry children.
func (k NodeKind) HasChildren() bool {
	return k == KindDocument || k == KindPreprocessorDirective
}

// Node is one element of the decoration tree. It is a value type; a tree is
// a Document whose Children are ordered by source position.
type Node struct {
	Kind     NodeKind
	Span     TextSpan
	Children []Node
}

// NewLeaf builds a childless node.
func NewLeaf(kind NodeKind, span TextSpan) Node {
	return Node{Kind: kind, Span: span}
}

// NewDocument freezes children into a Document node.
func NewDocument(span TextSpan, children []Node) Node {
	return Node{Kind: KindDocument, Span: span, Children: freeze(children)}
}

// NewDirective freezes children into a PreprocessorDirective node.
func NewDirective(span TextSpan, children []Node) Node {
	return Node{Kind: KindPreprocessorDirective, Span: span, Children: freeze(children)}
}

func freeze(children []Node) []Node {
	if len(children) == 0 {
		return nil
	}
	return slices.Clip(slices.Clone(children))
}

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the current node.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Descendants returns every node below n in source order (n excluded).
func (n Node) Descendants() []Node {
	var out []Node
	for _, child := range n.Children {
		child.Walk(func(d Node) bool {
			out = append(out, d)
			return true
		})
	}
	return out
}
