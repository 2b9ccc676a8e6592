package solver

// partition splits a locally consistent node that still has words with
// several candidates. For every such word it emits a child fixing that
// word to its first candidate, then one remainder child in which every
// such word has its first candidate removed. Together the children
// span the parent's candidate space; assignments reachable through
// more than one child collapse in the plaintext dedup. Every child
// shrinks at least one candidate list, so the search terminates. The
// driver pushes them in reverse so the leftmost fix is explored first.
func partition(wc wordCandidates) []wordCandidates {
	multi := []int{}
	for i, cands := range wc {
		if len(cands) > 1 {
			multi = append(multi, i)
		}
	}

	children := make([]wordCandidates, 0, len(multi)+1)
	for _, i := range multi {
		child := make(wordCandidates, len(wc))
		copy(child, wc)
		child[i] = wc[i][:1]
		children = append(children, child)
	}

	rest := make(wordCandidates, len(wc))
	copy(rest, wc)
	for _, i := range multi {
		rest[i] = wc[i][1:]
	}
	children = append(children, rest)
	return children
}
