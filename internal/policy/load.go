package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadDir loads and compiles all CUE policy packs in a directory.
// Returns an error if the directory does not exist or contains no CUE
// files; an empty policy table inside valid CUE files is allowed.
func LoadDir(dir string) (Table, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("policy directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("access policy directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan policy directory %s: %w", dir, err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("load CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("build CUE value: %w", formatCUEError(err))
	}

	return CompileTable(value)
}

// LoadFiles loads and compiles individual CUE policy pack files, merging
// them left to right (later files win on jurisdiction conflicts).
func LoadFiles(paths []string) (Table, error) {
	ctx := cuecontext.New()
	table := Table{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read policy pack %s: %w", path, err)
		}
		value := ctx.CompileBytes(data, cue.Filename(path))
		if err := value.Err(); err != nil {
			return nil, fmt.Errorf("compile policy pack %s: %w", path, formatCUEError(err))
		}
		t, err := CompileTable(value)
		if err != nil {
			return nil, fmt.Errorf("policy pack %s: %w", path, err)
		}
		table = table.Merge(t)
	}

	return table, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
