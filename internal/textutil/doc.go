// Package textutil provides text helpers for filename sanitization and the
// normalized grouping keys used to cluster releases of the same title.
//
// Key normalization lowercases, strips punctuation, and collapses whitespace
// so that "Movie.Title", "movie title" and "Movie-Title!" all produce the
// same grouping key.
package textutil
