package entity

// RateTable is an in-memory snapshot of exchange rates, all expressed against
// the same reference currency. A refresh replaces the whole table, entries are
// never mutated individually.
type RateTable struct {
	Rates       map[string]float64
	LastUpdated string
	NextUpdate  string
}
