// Package capacity implements the cluster capacity-analysis engine.
//
// The engine turns a raw cluster inventory (nodes, pods, namespaces) into
// derived capacity metrics, fit checks, and replica-scaling projections. It
// is read-only and stateless: every analysis call fetches a fresh snapshot
// through the Lister collaborator, normalizes all resource quantities into
// integer base units (millicores for CPU, bytes for memory), and computes
// its result as a pure function of that snapshot plus caller parameters.
//
// Nothing is cached across calls. The three list fetches that make up a
// snapshot are not transactionally coupled, so results describe the cluster
// "as of this snapshot" rather than a consistent point in time.
package capacity
