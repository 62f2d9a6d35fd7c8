// Package forms implements the declarative form-definition and composition
// core: typed field declarations resolve into flattened, uniquely named
// templates; composed sub-forms splice in with underscore-joined prefixes and
// build-time collision detection; instances deep-copy the template, support
// SQL-style unqualified field lookup, and run a two-phase conversion plus
// constraint validation pass with per-field message aggregation.
//
// Rendering is a boundary concern: the package only consumes the Widget
// value-holder contract and emits Submitted/Cancelled events for host
// applications to branch on.
package forms
