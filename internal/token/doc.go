// Package token defines the glob pattern token tree and the analyses run over it.
//
// Invariants:
//   - A tree is built once by a parser (or the constructors here) and is
//     immutable afterwards. The only mutation is Token.Unroot, which clears the
//     root flag of a Tree wildcard and is only used while partitioning.
//   - Children are owned by exactly one parent slice; there are no back
//     references.
//   - Annotations are opaque. Every node in a tree carries the same annotation
//     type, and Reannotate/Unannotate rebuild the whole tree.
//   - A negated Class is never invariant. A Tree wildcard is always open in
//     depth and breadth.
//   - Every analysis takes the path case policy as an explicit argument.
package token
