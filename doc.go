// Package vector provides Vector, a growable sequence container that keeps
// its elements in one contiguous block and separates obtaining storage from
// constructing elements in it.
//
// A Vector is layered as follows:
//  1. Raw storage: blocks of slots obtained from an arena.Allocator, which
//     never constructs or destroys anything.
//  2. Construction: elements are copied into raw slots one at a time, and
//     destroyed in reverse order. A partially built range is always unwound
//     before a failure is reported.
//  3. Growth: when full, a Vector builds a complete replacement block and
//     only then destroys and releases the old one.
//  4. The public operations, which funnel through the layers above.
//
// # Elements
//
// Any Go type may be stored. Element types whose copies can fail (typically
// because they own some resource) implement [Cloner]; element types that must
// be torn down explicitly implement [Destroyer]. Everything else is copied by
// assignment and merely zeroed on destruction.
//
// Elements are repositioned only by exchanging values, which cannot fail in
// Go, so [Vector.Insert] and [Vector.EraseRange] never copy an element except
// for the one being inserted.
//
// # Failure guarantees
//
// Every operation that returns an error leaves the vector exactly as it was
// when it fails: same length, same capacity, same elements. Failures are
// either an [*arena.AllocationError], when storage could not be obtained, or
// a [*ConstructionError], when an element's [Cloner.CloneInto] failed.
// Nothing is retried.
//
// Operations that do not return an error cannot fail. Out-of-range positions
// and popping from an empty vector are programming errors and panic.
//
// # Ownership
//
// A Vector owns its storage exclusively. [Vector.Clone] and [Vector.Assign]
// always allocate a fresh block; [Vector.Move] and [Vector.MoveAssign]
// transfer blocks without copying. A Vector is not safe for concurrent
// mutation; concurrent readers are fine as long as nothing mutates it.
// [WithOwnerCheck] turns accidental sharing into a panic.
package vector
