// Package schedule runs the pipeline as a long-lived daemon: generation and
// polish runs fire on cron expressions, an optional filesystem watcher
// triggers a polish run when new drafts land on disk, and a Prometheus
// listener exposes pipeline metrics.
//
// The watcher debounces events so a drafting run writing dozens of files
// triggers one polish run after the tree goes quiet, not one per file.
package schedule
