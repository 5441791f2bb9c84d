// Package sources defines the contract every source adapter implements and
// the error taxonomy that separates "drop this one entry" from "abort the
// run". Concrete adapters live in the subpackages wigmore, proms, and
// southbank.
package sources
