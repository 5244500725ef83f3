// Package variance implements the invariant/variant algebra used to analyze glob
// token trees.
//
// A Variance either carries one known value (Invariant) or describes a family of
// values (Variant) whose extent is Closed (bounded) or Open (unbounded).
// Variances combine three ways:
//   - sequencing (Then): a token followed by another token;
//   - multiplication (Times): an exact repetition count;
//   - disjunction (Disjunction): alternative branches.
//
// Conjunction folds sequencing across an ordered sequence seeded with the zero
// value of the invariant domain, which must be the identity of Concat.
package variance
