// Package signal contains the core domain types of the controller.
//
// It defines State (the shared signal scalars read across tasks and the
// interrupt path), the narrow per-field writer roles handed out by it, and
// the single-byte tokens carried by the bounded queues between tasks.
package signal
