// Package queue provides the bounded token queues that decouple the
// controller's tasks, plus the restricted sender handle used from interrupt
// context.
//
// Sends are strictly non-blocking and best-effort: a full queue drops the
// token and the producer moves on. Receives block until a token arrives or
// the context is canceled.
package queue
