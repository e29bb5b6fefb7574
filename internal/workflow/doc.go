// Package workflow holds the state shared by every stage of a pipeline
// planning run: the configuration, the instruments being analyzed, the
// analysis span and the graph that stages add jobs and files to.
package workflow
