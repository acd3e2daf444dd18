// Package pipeline streams FASTA records through an Analyzer on a worker
// pool and calls a visit callback with one result per analysis unit, in
// input order.
//
// The only contract to implement is Analyzer (Analyze). This keeps the
// pipeline swappable and testable.
package pipeline
