// Package architecture_test pins the import discipline of the module tree.
// Each module under internal/modules (session, timer, task, cheer, notify,
// history) is hexagonal: domain at the center, service and usecase around it,
// adapters at the rim. Modules talk to each other only through port/in
// interfaces and dto values; a bridge that needs another module's usecase
// lives in adapter/out and depends on the port, never the implementation.
package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// layers, ordered from rim to center. Files outside these directories (a
// module's root or generated code) are not constrained.
var layers = []string{
	"adapter/in",
	"adapter/out",
	"usecase",
	"service",
	"domain",
	"port/in",
	"port/out",
	"dto",
}

func TestModuleImportsRespectLayering(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	var violations []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module, layer := classify(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "pomoterm/internal/modules/") {
				continue
			}
			if reason := disallowed(module, layer, importPath); reason != "" {
				violations = append(violations, slash+" ("+layer+") imports "+importPath+": "+reason)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
	for _, v := range violations {
		t.Errorf("%s", v)
	}
}

// classify extracts the module name and layer from a file path, for example
// internal/modules/session/adapter/out/file_session_store.go is module
// "session" in layer "adapter/out".
func classify(path string) (module, layer string) {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			module = parts[i+1]
			break
		}
	}
	for _, l := range layers {
		if strings.Contains(path, "/"+l+"/") {
			layer = l
			break
		}
	}
	return module, layer
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

// disallowed reports why a cross-layer import is forbidden, or "" when the
// import is fine.
func disallowed(module, layer, importPath string) string {
	if !strings.Contains(importPath, "/internal/modules/"+module+"/") {
		// Cross-module: only the public surface is reachable.
		if strings.Contains(importPath, "/service/") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") {
			return "modules may only reach each other through port/in and dto"
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return ""
		}
	}

	switch layer {
	case "adapter/in":
		if !isPortIn(importPath) && !isDTO(importPath) {
			return "inbound adapters drive the module through port/in only"
		}
	case "usecase":
		if strings.Contains(importPath, "/adapter/") {
			return "usecases must not know concrete adapters"
		}
	case "service":
		if strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") {
			return "services sit below usecases and above adapters"
		}
	case "domain":
		if strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.Contains(importPath, "/service/") {
			return "the domain imports nothing above itself"
		}
	}
	return ""
}
