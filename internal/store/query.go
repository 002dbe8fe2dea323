package store

// Query filters a List or Count call. Eq holds column equality filters keyed
// by db column name; a nil value matches NULL. Limit <= 0 means no limit.
type Query struct {
	Eq    map[string]any
	Limit int
}

// Where returns a Query with one equality filter.
func Where(column string, value any) Query {
	return Query{Eq: map[string]any{column: value}}
}

// And returns a copy of q with an extra equality filter.
func (q Query) And(column string, value any) Query {
	eq := make(map[string]any, len(q.Eq)+1)
	for k, v := range q.Eq {
		eq[k] = v
	}
	eq[column] = value
	q.Eq = eq
	return q
}

// WithLimit returns a copy of q limited to n rows.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}
