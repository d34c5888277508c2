// Package evaluation runs labelled example descriptions through the
// classifier and reports per-suite and overall accuracy.
//
// Three suites ship with the binary: basic (well-known products), advanced
// (less obvious products) and edge (generic or keyword-only wording). Every
// case is classified once against the live remote model, so results vary with
// the model and its temperature.
package evaluation
