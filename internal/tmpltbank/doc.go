// Package tmpltbank sets up the template bank stage of a search workflow.
//
// The stage either points every instrument at banks generated outside the
// workflow, or adds bank generation jobs to the workflow graph. Generated
// banks can follow the instrument's science segments, optionally aligned
// with the matched-filter stage, or be built once over the whole analysis
// span without reading data. Whatever the method, the caller gets back one
// collection of bank artifacts for the matched-filter stage to consume.
package tmpltbank
