// Package conf implements rester's layered configuration convention. Values
// are loaded once from a flat JSON file and individual keys can be overridden
// through environment variables following a fixed naming scheme
// (RESTER_<KEY_UPPERCASED>).
//
// The Store is immutable after Load and is passed by reference to whatever
// needs it; there is no ambient global configuration state.
package conf
