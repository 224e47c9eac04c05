// Package selection resolves pointer clicks to a selected node and mode.
//
// The renderer reports the surfaces under the pointer, topmost first. Each
// surface's kind selects a Strategy that scores it:
//
//	priority = base
//	         + direct bonus        (topmost, or only overlays above)
//	         + contains-selection  (negative for containers)
//	         + custom score        (containers: empty-space click)
//
// Candidates are sorted by priority, ties are broken by the strategies'
// Compare (containers prefer the innermost), then by stack position. The
// best candidate becomes the selection; no candidate clears it.
//
// The package knows nothing about the document tree. Containment questions
// go through the Hierarchy interface.
package selection
