// Package srs implements the spaced-repetition scheduling algorithm
// (an SM-2 derivative) used to compute when a flashcard is next due for
// review. All computations are pure: given identical inputs, including
// the current time, they produce identical outputs, which makes the
// package safe for concurrent use without synchronization.
package srs
