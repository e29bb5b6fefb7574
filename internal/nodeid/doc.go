// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for the identifiers of
workflow graph nodes.

The format is a dot-separated sequence of segments, each optionally indexed,
e.g. `tmpltbank.H1.full_data[1000000000]` for a job node or
`file.H1.3f1c...` for a file node.

Job addresses are built from the stage, the instrument and the stage tags and
are indexed by the GPS start of the data the job reads, so that re-running
the same stage on the same inputs produces the same addresses.
*/
package nodeid
