// Package aggregate merges the per-source scan results into the final feed:
// concatenate, sort chronologically, assign identifiers, and verify that no
// two records share one. Uniqueness is the pipeline's correctness backstop,
// so a collision aborts the run instead of being deduplicated away.
package aggregate
