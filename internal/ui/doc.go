// Package ui provides the single-threaded task loop that stands in for
// the editor's UI thread.
//
// Components that must run on the UI thread post functions to the Loop;
// the Loop executes them one at a time, in the order they were posted.
// This gives deferred selection listeners their FIFO delivery guarantee.
package ui
