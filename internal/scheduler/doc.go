// Package scheduler places the jobs of one program for one instrument over
// that instrument's science segments.
//
// Every job reads a fixed amount of data and produces output valid for a
// fixed chunk inside it. SetupSingleIFO covers each segment with as few jobs
// as possible, spreading them evenly so the first reads from the segment
// start and the last reads up to the segment end. Segments shorter than one
// job's data are skipped.
//
// A job can be linked to the job of a later stage. The valid chunk is then
// narrowed to what both jobs can use, so one output of each stage covers the
// same time. In compatibility mode jobs are laid end to end from the segment
// start, with only the last one pulled back to the segment end, which is
// the alignment older pipelines used.
package scheduler
