// Package hcl provides the HCL implementation of config.Loader. A workflow
// configuration is written as labeled section blocks whose attributes are
// the section's options:
//
//	section "ahope-tmpltbank" {
//	  tmpltbank-method         = "WORKFLOW_INDEPENDENT_IFOS"
//	  tmpltbank-write-psd-file = null
//	}
//
// Attribute values are evaluated statically and converted to strings; null
// declares a presence flag.
package hcl
