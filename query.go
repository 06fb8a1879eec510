package structmatch

import (
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSER — the mini-language
// ═══════════════════════════════════════════════════════════════════════════════
// Grammar (whitespace-separated tokens):
//
//	~[label]:surface                a text token
//	@[label]:surface                an annotation term (surface lowercased)
//	#name(headLabel,depLabel,...)   a constraint; name is "parent" or "contains"
//
// Example:
//
//	@s:sentence @w:cat #contains(s,w)
//
// Parsing is two-pass: the first pass collects every element (so labels
// resolve regardless of where a constraint appears relative to the elements
// it references), the second pass resolves constraints against that label
// table and builds both a directed head->dependent edge (for constraint
// checking) and an undirected edge (for connected-component sizing).
// ═══════════════════════════════════════════════════════════════════════════════

// ElementType distinguishes a plain token from an annotation term.
type ElementType int

const (
	TypeToken ElementType = iota
	TypeAnnotation
)

func (t ElementType) String() string {
	if t == TypeAnnotation {
		return "ANNOTATION"
	}
	return "TOKEN"
}

// ConstraintKind is PARENT or CONTAINS.
type ConstraintKind int

const (
	KindParent ConstraintKind = iota
	KindContains
)

func (k ConstraintKind) String() string {
	if k == KindContains {
		return "CONTAINS"
	}
	return "PARENT"
}

// QueryElement is one node of the compiled query. SortIndex and
// ConnectQty/ComponentID start at their parse-time values; SortIndex is
// overwritten once postings are opened and costs are known (see AssignOrder).
type QueryElement struct {
	Token       string
	Type        ElementType
	Label       string // "" if the element can't be referenced by a constraint
	ConnectQty  int    // size of the element's connected component, 0 if isolated
	ComponentID int
	SortIndex   int
}

// ConstraintEdge is a directed head->dependent constraint. HeadElement and
// DepElement are indices into CompiledQuery.Elements.
type ConstraintEdge struct {
	HeadElement int
	DepElement  int
	Kind        ConstraintKind
}

// CompiledQuery is the immutable result of parsing. It is safe to share by
// reference across concurrent query executions — nothing in it is ever
// mutated after Compile returns.
type CompiledQuery struct {
	Elements []QueryElement
	Edges    []ConstraintEdge
}

// Compile parses a query string into a CompiledQuery, or returns a
// SYNTAX_ERROR. It does not touch any posting list — no information about
// term frequency or posting cost is available yet.
func Compile(query string) (*CompiledQuery, error) {
	tokens := strings.Fields(query)

	elements, labelIndex, constraintTokens, err := parseElements(tokens)
	if err != nil {
		return nil, err
	}

	edges, undirected, err := parseConstraints(constraintTokens, labelIndex)
	if err != nil {
		return nil, err
	}

	assignConnectivity(elements, undirected)

	return &CompiledQuery{Elements: elements, Edges: edges}, nil
}

// parseElements is pass one: collect every ~/@ element and record which
// tokens are constraints (deferred to pass two, since a constraint may
// reference a label defined later in the string).
func parseElements(tokens []string) ([]QueryElement, map[string]int, []string, error) {
	var elements []QueryElement
	var constraintTokens []string
	labelIndex := make(map[string]int)

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		switch tok[0] {
		case '~', '@':
			elem, err := parseElement(tok)
			if err != nil {
				return nil, nil, nil, err
			}
			if elem.Label != "" {
				if _, dup := labelIndex[elem.Label]; dup {
					return nil, nil, nil, syntaxErrorf("duplicate label %q", elem.Label)
				}
				labelIndex[elem.Label] = len(elements)
			}
			elements = append(elements, elem)
		case '#':
			constraintTokens = append(constraintTokens, tok)
		default:
			return nil, nil, nil, syntaxErrorf("token %q missing ~/@/# prefix", tok)
		}
	}

	return elements, labelIndex, constraintTokens, nil
}

// parseElement parses one "~label:surface" or "@label:surface" token.
func parseElement(tok string) (QueryElement, error) {
	var typ ElementType
	if tok[0] == '~' {
		typ = TypeToken
	} else {
		typ = TypeAnnotation
	}

	rest := tok[1:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return QueryElement{}, syntaxErrorf("token %q missing ':'", tok)
	}
	label := rest[:colon]
	surface := rest[colon+1:]

	if err := validateLabel(label); err != nil {
		return QueryElement{}, err
	}
	if surface == "" {
		return QueryElement{}, syntaxErrorf("token %q has empty surface", tok)
	}

	if typ == TypeAnnotation {
		surface = strings.ToLower(surface)
	}

	return QueryElement{Token: surface, Type: typ, Label: label}, nil
}

// validateLabel rejects label characters the grammar excludes. An invalid
// label is a SYNTAX_ERROR: a label silently containing ',', '(', or ')'
// would corrupt constraint-token parsing downstream.
func validateLabel(label string) error {
	for _, r := range label {
		switch r {
		case ',', ' ', '(', ')':
			return syntaxErrorf("label %q contains an excluded character %q", label, r)
		}
	}
	return nil
}

// undirectedEdge is one edge of the connectivity graph, independent of
// constraint kind or direction.
type undirectedEdge struct {
	a, b int
}

// parseConstraints is pass two: resolve each "#name(label,label,...)" token
// against labelIndex, producing directed head->dependent edges for
// constraint checking and undirected edges for connectivity sizing.
func parseConstraints(tokens []string, labelIndex map[string]int) ([]ConstraintEdge, []undirectedEdge, error) {
	var edges []ConstraintEdge
	var undirected []undirectedEdge

	for _, tok := range tokens {
		kind, labels, err := parseConstraintToken(tok)
		if err != nil {
			return nil, nil, err
		}
		if len(labels) < 2 {
			return nil, nil, syntaxErrorf("constraint %q needs at least 2 labels", tok)
		}

		headLabel := labels[0]
		headIdx, ok := labelIndex[headLabel]
		if !ok {
			return nil, nil, syntaxErrorf("constraint %q references unknown label %q", tok, headLabel)
		}

		for _, depLabel := range labels[1:] {
			depIdx, ok := labelIndex[depLabel]
			if !ok {
				return nil, nil, syntaxErrorf("constraint %q references unknown label %q", tok, depLabel)
			}
			edges = append(edges, ConstraintEdge{HeadElement: headIdx, DepElement: depIdx, Kind: kind})
			undirected = append(undirected, undirectedEdge{a: headIdx, b: depIdx})
		}
	}

	return edges, undirected, nil
}

// parseConstraintToken parses "#name(a,b,c)" into its kind and label list.
func parseConstraintToken(tok string) (ConstraintKind, []string, error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 {
		return 0, nil, syntaxErrorf("constraint %q missing '('", tok)
	}
	if !strings.HasSuffix(tok, ")") {
		return 0, nil, syntaxErrorf("constraint %q missing closing ')'", tok)
	}

	name := strings.ToLower(tok[1:open])
	var kind ConstraintKind
	switch name {
	case "parent":
		kind = KindParent
	case "contains":
		kind = KindContains
	default:
		return 0, nil, syntaxErrorf("unknown constraint name %q", name)
	}

	inner := tok[open+1 : len(tok)-1]
	if inner == "" {
		return 0, nil, syntaxErrorf("constraint %q has no labels", tok)
	}
	labels := strings.Split(inner, ",")
	return kind, labels, nil
}

// assignConnectivity computes each element's connected-component size and
// id via iterative DFS over the undirected edge list. A node with no edges
// at all gets ConnectQty == 0, not 1: it is deliberately left out of the
// component-size count below rather than treated as a singleton of size 1,
// so downstream ordering and pruning can distinguish "has no constraints"
// from "is alone in a component of size 1" — see the isolated-node loop
// at the end of this function.
func assignConnectivity(elements []QueryElement, edges []undirectedEdge) {
	n := len(elements)
	adjacency := make([][]int, n)
	for _, e := range edges {
		adjacency[e.a] = append(adjacency[e.a], e.b)
		adjacency[e.b] = append(adjacency[e.b], e.a)
	}

	visited := make([]bool, n)
	componentID := 0

	for start := 0; start < n; start++ {
		if visited[start] || len(adjacency[start]) == 0 {
			continue
		}

		// Iterative DFS to collect this component's members.
		var members []int
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, node)
			for _, next := range adjacency[node] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}

		for _, m := range members {
			elements[m].ConnectQty = len(members)
			elements[m].ComponentID = componentID
		}
		componentID++
	}

	// Isolated nodes: no edges, ConnectQty stays 0 (its zero value), but each
	// still needs its own componentId so ordering can treat it as a
	// singleton group.
	for i := 0; i < n; i++ {
		if len(adjacency[i]) == 0 {
			elements[i].ComponentID = componentID
			componentID++
		}
	}
}
