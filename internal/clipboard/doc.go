// Package clipboard provides the single-slot clipboard store and the
// registry of per-kind copy, cut and paste handlers.
//
// The Store is an ordinary value: each editor session owns one, and tests
// create their own. Paste never inserts the stored payload itself; every
// handler inserts a clone whose ids were regenerated with
// tree.CloneWithFreshIDs, so the same content can be pasted any number of
// times. Cutting leaves the slot populated for the same reason.
package clipboard
