// Package config loads and validates gochunk configuration.
//
// Configuration is read from a YAML file, layered over Default, then
// overridden by GOCHUNK_* environment variables and finally validated:
//
//	cfg, err := config.LoadWithEnvOverrides("gochunk.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A minimal file:
//
//	policy:
//	  kind: variance
//	  threshold: 1.0
//	composition:
//	  mode: recursive
//	  max_depth: 3
//	  min_chunk_size: 2
//	executor:
//	  workers: 8
//
// Validation collects every problem before returning, as a ValidationError.
// Policy parameters are range-checked again by the policy constructors.
package config
