// Package widget holds the state of one health widget instance and derives
// what it shows.
//
// A Widget starts active and Loading. Poll results are applied with Apply:
// the first response of either kind marks it loaded, successful reports
// replace the previous one, and the first failure becomes a sticky error
// that takes rendering precedence for the rest of the instance's life.
// Deactivate marks the instance as torn down; results arriving afterwards
// are dropped.
//
// View computes the display model for a point in time. Staleness is never
// stored; it is derived from the injected clock on every call.
package widget
