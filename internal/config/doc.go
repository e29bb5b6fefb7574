// Package config defines the format-agnostic configuration model for the
// workflow, the Loader interface implemented by the format packages (hcl,
// inifile, yamlfile), and the Resolver that answers tag-qualified lookups.
//
// The model is a two-level mapping, section -> option -> value. A section
// name may carry tags, "ahope-tmpltbank-full_data", which overlay the bare
// section for callers that pass those tags. The Resolver is a read-only view:
// once built it is never mutated and can be shared freely.
package config
