// Package textutil provides the text normalization applied to every
// description before it is classified.
//
// Normalization lowercases with a language-neutral caser, replaces punctuation
// and symbols with spaces, and collapses whitespace. The output is what gets
// reported as the normalized text of a classification result.
package textutil
