// Package manifest reads the stage inputs the build tool takes from disk
// and writes the manifest describing what the stage produced. All formats
// are YAML.
//
// Science segments map instruments to [start, end] pairs:
//
//	H1:
//	  - [1000000000, 1000005000]
//	L1:
//	  - [1000001000, 1000004000]
//
// Data-availability artifacts are a list of records with instrument, tag,
// start, end and either a location URL or a local path.
package manifest
