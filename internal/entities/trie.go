package entities

import "sort"

type node struct {
	children map[string]*node
	types    []string
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// insert adds typ under the token path. It reports whether the phrase was
// new to the trie.
func (n *node) insert(tokens []string, typ string) bool {
	cur := n
	for _, tok := range tokens {
		next, ok := cur.children[tok]
		if !ok {
			next = newNode()
			cur.children[tok] = next
		}
		cur = next
	}

	isNew := len(cur.types) == 0
	i := sort.SearchStrings(cur.types, typ)
	if i < len(cur.types) && cur.types[i] == typ {
		return false
	}
	cur.types = append(cur.types, "")
	copy(cur.types[i+1:], cur.types[i:])
	cur.types[i] = typ
	return isNew
}

func (n *node) find(tokens []string) []string {
	cur := n
	for _, tok := range tokens {
		next, ok := cur.children[tok]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur.types
}

// longest returns the length of the longest phrase starting at tokens[0]
// and its types.
func (n *node) longest(tokens []string) (int, []string) {
	cur := n
	bestLen, bestTypes := 0, []string(nil)
	for i, tok := range tokens {
		next, ok := cur.children[tok]
		if !ok {
			break
		}
		cur = next
		if len(cur.types) > 0 {
			bestLen, bestTypes = i+1, cur.types
		}
	}
	return bestLen, bestTypes
}
