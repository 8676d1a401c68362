// Package site runs a complete styleguide build.
//
// A build is a fixed sequence of stages sharing one BuildState:
//
//	discover_sources -> extract_blocks -> build_tree -> prepare_output -> write_output -> post_process
//
// Each stage is timed and classified into the Report. Fatal errors and context
// cancellation stop the sequence; warnings are recorded and the build continues.
package site
