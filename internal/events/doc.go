// Package events carries analytics events out of the request path.
//
// Services report what happened through the Tracker interface and never wait
// on the outcome. AsyncTracker queues events in a bounded buffer and a small
// pool of workers hands them to an EventEmitter, which fans each event out
// to its registered handlers. When the buffer is full the event is dropped
// and logged; analytics never slows down or fails a user operation.
package events
