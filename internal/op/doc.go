// Package op defines rester's operation engine: composable units of work
// that are performed against an HTTP client and expose their result
// afterwards. Operations are built by the script evaluator and executed
// sequentially, run-to-completion, with no shared state between runs.
package op
