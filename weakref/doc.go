// Package weakref implements maps and sets whose entries
// do not keep their referents alive.
//
// Entries hold [weak.Pointer] handles. Once a referent becomes
// otherwise unreachable and is collected, lookups report it absent,
// but its slot stays in the table until it is swept.
// Sweeping is amortized: every operation is counted, and once the table
// holds more than a threshold of slots (see [WithSweepThreshold])
// a sweep runs after twice as many operations as there are slots.
// [ValueMap.Sweep], [KeyMap.Sweep], and [Set.Sweep] run one explicitly.
//
// Weakly held keys are compared by identity. Two weak pointers made
// from the same pointer compare equal even after the referent is
// collected, so a dead key's slot can always be located and removed.
//
// Only pointers can be weakly referenced. Referents should be larger
// than 16 bytes or contain pointers; smaller pointer-free objects may be
// batched by the runtime's tiny allocator and collected late.
//
// None of the types here are safe for concurrent use.
package weakref
