// Package executables describes the programs a pipeline stage can schedule.
//
// A Job is a program bound to one instrument, one output directory and one
// set of stage tags. It knows how much input data each invocation reads and
// which part of that data its outputs are valid for, and it builds graph
// nodes for concrete time spans. Programs that can also run without input
// data have a separate constructor returning a NoDataJob, which reads none
// of the valid-time options.
//
// Program names are the base names of the configured executable paths.
package executables
