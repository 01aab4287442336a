// Package extract turns a test-run report into the text blocks shown to an examinee:
// the run summary, failing-test details with a parallel list of failures for source
// lookup, and per-test assertion blocks.
//
// Every function is a pure transformation of its input. Nothing here mutates the
// report, so the extractors may run concurrently over the same value.
package extract
