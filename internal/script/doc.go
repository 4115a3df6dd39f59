// Package script loads and evaluates rester scripts. A script is a single
// HCL file whose top-level attributes are definitions: each one binds a name
// to a value or to an operation built with the builtin functions (get, post,
// bearer, sequence, config, ...). Definitions may reference each other in any
// textual order; evaluation is dependency-ordered and reference cycles are
// rejected.
package script
