// Package artifact models the files a workflow stage produces and consumes.
// An Artifact is immutable once created; a Collection is the ordered list of
// artifacts one stage hands to the next.
package artifact
