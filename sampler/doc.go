// Package sampler implements the concurrent sample-ingestion pipeline that
// keeps the displayed flamegraph current without blocking interaction.
//
// Raw folded-stack snapshots flow from a producer (the py-spy recorder for
// live processes, or a file watcher for static inputs) through a
// single-slot [Mailbox] to a parse loop ([Collect]), which publishes fully
// built graphs through a second mailbox consumed by the UI tick. Mailboxes
// overwrite on publish: slow consumers silently drop stale intermediate
// snapshots instead of queueing unboundedly.
//
// Locks guard only the instant of swap. Parsing happens entirely in the
// producer goroutine before publishing, rendering entirely in the consumer
// after taking, so the foreground never observes a partially-built graph.
package sampler
