package abundance

// queryRefs holds the distinct references a query hit.  Almost every query
// hits a single reference, so the first one is kept inline.
type queryRefs struct {
	first  string
	others []string
}

// Classifier decides, per query, whether it aligns to exactly one reference
// across the whole run.  It must observe every hit of the run before
// Unique is consulted.
type Classifier struct {
	queries map[string]*queryRefs
}

// NewClassifier creates an empty Classifier.
func NewClassifier() *Classifier {
	return &Classifier{queries: map[string]*queryRefs{}}
}

// Observe records that query hit reference.  Repeated hits of the same
// reference, at any coordinates, count once.
func (c *Classifier) Observe(query, reference string) {
	q, ok := c.queries[query]
	if !ok {
		c.queries[query] = &queryRefs{first: reference}
		return
	}
	if q.first == reference {
		return
	}
	for _, r := range q.others {
		if r == reference {
			return
		}
	}
	q.others = append(q.others, reference)
}

// Multiplicity returns the number of distinct references query hit, or 0 if
// it was never observed.
func (c *Classifier) Multiplicity(query string) int {
	q, ok := c.queries[query]
	if !ok {
		return 0
	}
	return 1 + len(q.others)
}

// Unique reports whether query hit exactly one reference.
func (c *Classifier) Unique(query string) bool {
	return c.Multiplicity(query) == 1
}

// NumQueries returns the number of distinct queries observed.
func (c *Classifier) NumQueries() int { return len(c.queries) }

// NumUnique returns the number of observed queries that are unique.
func (c *Classifier) NumUnique() int {
	n := 0
	for _, q := range c.queries {
		if len(q.others) == 0 {
			n++
		}
	}
	return n
}
