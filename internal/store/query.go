package store

import (
	entsql "entgo.io/ent/dialect/sql"
)

// predicates turns opts into WHERE predicates over the sequence and
// timestamp columns shared by every event table.
func (o QueryOpts) predicates() []*entsql.Predicate {
	var ps []*entsql.Predicate
	if o.After > 0 {
		ps = append(ps, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		ps = append(ps, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		ps = append(ps, entsql.GTE("timestamp", toUnix(o.From)))
	}
	if !o.To.IsZero() {
		ps = append(ps, entsql.LTE("timestamp", toUnix(o.To)))
	}
	return ps
}

// apply adds the filters and limit of opts to sel, newest first.
func (o QueryOpts) apply(sel *entsql.Selector, extra ...*entsql.Predicate) *entsql.Selector {
	ps := append(extra, o.predicates()...)
	if len(ps) > 0 {
		sel = sel.Where(entsql.And(ps...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if o.Limit > 0 {
		sel = sel.Limit(o.Limit)
	}
	return sel
}
