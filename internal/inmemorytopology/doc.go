// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. Workflow graphs built by a single
// planning run fit comfortably in memory and are not persisted.
package inmemorytopology
