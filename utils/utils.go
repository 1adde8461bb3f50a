package utils

import (
	"io/fs"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// SourceExt is the file extension of glint sources.
const SourceExt = ".gl"

// FindSourceFiles returns every glint source under root, sorted. A root
// that is itself a file is returned as is.
func FindSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root && !d.IsDir() {
			files = append(files, path)
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return files, nil
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}
