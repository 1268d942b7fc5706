// Package flame implements the flamegraph data engine: an aggregated tree
// of call frames with sample counts, built from folded-stack text.
//
// A [Graph] owns a single synthetic root frame and is immutable once built.
// Live sampling replaces the whole graph rather than patching it in place;
// positions inside a graph are therefore addressed with [Stack] values
// (paths of frame names from the root) that can be re-resolved against any
// graph instance.
//
// The package also provides the match predicates used by the viewer:
// [SearchPattern] for literal, regex, and fuzzy name matching, and
// [RowFilter] for boolean filter expressions over aggregated table rows.
package flame
