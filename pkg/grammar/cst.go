package grammar

import "fmt"

// NodeKind identifies a concrete-syntax-tree production. The set covers
// all four dialects; each dialect's parser produces only the kinds its
// grammar mentions.
type NodeKind uint8

const (
	NodeDocument NodeKind = iota + 1

	// Directives (Turtle/TriG)
	NodePrefixDecl
	NodeBaseDecl
	NodeVersionDecl

	// Statements
	NodeTriples
	NodeGraphBlock // TriG: optional label child + contained statements

	// Productions below statement level
	NodeSubject
	NodePredicate // N-Triples/N-Quads predicate position
	NodeVerb      // Turtle/TriG verb: 'a' or an iri
	NodePredicateObjectList
	NodeObject
	NodeGraphLabel // N-Quads 4th position
	NodeIRI
	NodeBlankNode
	NodeLiteral
	NodeCollection
	NodeBlankNodePropertyList
	NodeReifiedTriple
	NodeTripleTerm
	NodeReifier
	NodeAnnotation
)

var nodeKindNames = map[NodeKind]string{
	NodeDocument:              "document",
	NodePrefixDecl:            "prefixDecl",
	NodeBaseDecl:              "baseDecl",
	NodeVersionDecl:           "versionDecl",
	NodeTriples:               "triples",
	NodeGraphBlock:            "graphBlock",
	NodeSubject:               "subject",
	NodePredicate:             "predicate",
	NodeVerb:                  "verb",
	NodePredicateObjectList:   "predicateObjectList",
	NodeObject:                "object",
	NodeGraphLabel:            "graphLabel",
	NodeIRI:                   "iri",
	NodeBlankNode:             "blankNode",
	NodeLiteral:               "literal",
	NodeCollection:            "collection",
	NodeBlankNodePropertyList: "blankNodePropertyList",
	NodeReifiedTriple:         "reifiedTriple",
	NodeTripleTerm:            "tripleTerm",
	NodeReifier:               "reifier",
	NodeAnnotation:            "annotation",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("node(%d)", k)
}

// Node is one CST node: the production it was built by, its child nodes
// in source order, and the tokens it directly owns. A node belongs to the
// parse that created it and is consumed once by a reader.
type Node struct {
	Kind     NodeKind
	children []*Node
	tokens   []Token
}

func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

func (n *Node) Append(child *Node) {
	n.children = append(n.children, child)
}

func (n *Node) AppendToken(tok Token) {
	n.tokens = append(n.tokens, tok)
}

// Children returns all child nodes in source order.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildrenOf returns the ordered group of children produced by one
// sub-rule. A production may invoke the same sub-rule several times, so
// the group preserves occurrence order.
func (n *Node) ChildrenOf(kind NodeKind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first child of the given kind, or nil.
func (n *Node) Child(kind NodeKind) *Node {
	for _, c := range n.children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Tokens returns the tokens owned directly by this node, in source order.
func (n *Node) Tokens() []Token {
	return n.tokens
}

// FirstToken returns this node's first owned token.
func (n *Node) FirstToken() (Token, bool) {
	if len(n.tokens) == 0 {
		return Token{}, false
	}
	return n.tokens[0], true
}

// TokenOf returns the first owned token of one of the given kinds.
func (n *Node) TokenOf(kinds ...TokenKind) (Token, bool) {
	for _, tok := range n.tokens {
		for _, k := range kinds {
			if tok.Kind == k {
				return tok, true
			}
		}
	}
	return Token{}, false
}
