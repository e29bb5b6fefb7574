// Package segment provides the integer time intervals the workflow is built
// from. A Segment is half-open, [Start, End), and a List is a sorted union of
// disjoint segments such as an instrument's science time.
package segment
