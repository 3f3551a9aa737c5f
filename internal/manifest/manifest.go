package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadMode controls how errors are handled during manifest loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error codes for manifest loading.
const (
	ErrCodeNotFound    = "E_MANIFEST_NOT_FOUND"
	ErrCodeNoFiles     = "E_MANIFEST_NO_FILES"
	ErrCodeLoadFailed  = "E_MANIFEST_LOAD"
	ErrCodeBuildFailed = "E_MANIFEST_BUILD"
	ErrCodeBadPipeline = "E_MANIFEST_PIPELINE"
)

// LoadError represents an error that occurred during manifest loading.
type LoadError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Pipeline is one named, ordered composition of transition paths.
type Pipeline struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
}

// Manifest holds the pipelines loaded from a directory of CUE files,
// in declaration order.
type Manifest struct {
	Pipelines []Pipeline
	FileCount int
}

// Pipeline returns the pipeline with the given name.
func (m *Manifest) Pipeline(name string) (*Pipeline, bool) {
	for i := range m.Pipelines {
		if m.Pipelines[i].Name == name {
			return &m.Pipelines[i], true
		}
	}
	return nil, false
}

// Load loads pipeline definitions from every CUE file in dir.
//
// With LoadModeFailFast the first error ends the load; with
// LoadModeCollectAll every pipeline is checked and all errors are returned
// together, alongside whatever loaded cleanly.
func Load(dir string, mode LoadMode) (*Manifest, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir, Package: "_"}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	manifest := &Manifest{FileCount: len(cueFiles)}
	var errs []error

	pipelines := value.LookupPath(cue.ParsePath("pipeline"))
	if !pipelines.Exists() {
		return manifest, nil
	}

	iter, iterErr := pipelines.Fields()
	if iterErr != nil {
		return manifest, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("iterating pipelines: %v", iterErr)}}
	}
	for iter.Next() {
		pipeline, err := decodePipeline(iter.Label(), iter.Value())
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return manifest, errs
			}
			continue
		}
		manifest.Pipelines = append(manifest.Pipelines, *pipeline)
	}

	return manifest, errs
}

// decodePipeline extracts one pipeline from its CUE value and validates it.
func decodePipeline(name string, v cue.Value) (*Pipeline, error) {
	var raw struct {
		Description string   `json:"description"`
		Steps       []string `json:"steps"`
	}
	if err := v.Decode(&raw); err != nil {
		return nil, &LoadError{Code: ErrCodeBadPipeline, Message: fmt.Sprintf("pipeline %q: %v", name, err)}
	}
	if len(raw.Steps) == 0 {
		return nil, &LoadError{Code: ErrCodeBadPipeline, Message: fmt.Sprintf("pipeline %q: steps must not be empty", name)}
	}
	for i, step := range raw.Steps {
		if strings.TrimSpace(step) == "" {
			return nil, &LoadError{Code: ErrCodeBadPipeline, Message: fmt.Sprintf("pipeline %q: step %d is empty", name, i)}
		}
	}
	return &Pipeline{Name: name, Description: raw.Description, Steps: raw.Steps}, nil
}

// findCUEFiles returns the .cue files directly in dir, sorted by name.
// Subdirectories are not descended; CUE packages handle their own imports.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
