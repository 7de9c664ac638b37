// Package miner simulates the hashing workload of a small mining appliance.
//
// Nothing here performs real proof-of-work. Each Tick digests a throwaway
// seed with SHA-256 purely so that "one hash" costs something, then updates
// counters:
//
//	TotalHashes     +1 per tick, never reset within a process
//	AcceptedShares  +1 with fixed probability per tick (default 0.001)
//	CurrentRate     hashes counted during the last full wall-clock second
//	History         the last N CurrentRate samples, oldest evicted first
//
// Stats carries no lock. The supervisor owns the single Stats value and
// serializes every Engine call behind its own mutex.
package miner
