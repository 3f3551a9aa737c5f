// Package manifest loads pipeline definitions from CUE files and fact
// values from YAML.
//
// A manifest declares named pipelines, each an ordered list of transition
// paths to compose:
//
//	pipeline: greet: {
//		description: "insert a name, then compose a greeting"
//		steps: ["names/insert", "greet/compose"]
//	}
//
// Loading parses and validates the CUE; Resolve then composes each
// pipeline's steps against a transition dictionary, so requirement and
// production conflicts surface before anything executes.
//
// The FactRegistry maps stable names to fact types, letting YAML fact files
// seed a machine with typed values:
//
//	name: {value: "Ada"}
//	counter: {value: 3}
package manifest
