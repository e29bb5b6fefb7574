// Package registry maps configured executable names to the strategies that
// create their jobs.
//
// The tables are closed: a name that is not registered is an error, never a
// fallback to some default program. Names are matched against the base name
// of the configured path, so `/opt/pycbc/bin/pycbc_geom_nonspinbank` resolves
// to the geometric bank generator.
package registry
