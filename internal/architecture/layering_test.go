package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "worklog/internal/"

// allowed lists, per layer, which layers of the same module it may import.
var allowed = map[string][]string{
	"domain":      {},
	"dto":         {},
	"port/in":     {"dto"},
	"port/out":    {"domain"},
	"service":     {"domain", "port/out"},
	"usecase":     {"domain", "dto", "port/in", "port/out", "service"},
	"adapter/in":  {"dto", "port/in"},
	"adapter/out": {"domain", "port/out"},
}

func TestModuleLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(file, importPath string) {
		layer := detectLayer(file)
		if layer == "" || !strings.HasPrefix(importPath, modulePrefix+"modules/") {
			return
		}
		if moduleName(importPath) != moduleName(file) {
			if target := detectLayer(importPath + "/"); target != "dto" && target != "port/in" {
				t.Errorf("%s reaches into another module: %s", file, importPath)
			}
			return
		}
		target := detectLayer(importPath + "/")
		for _, ok := range allowed[layer] {
			if ok == target {
				return
			}
		}
		t.Errorf("forbidden import in %s (%s -> %s): %s", file, layer, target, importPath)
	})
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "platform"), func(file, importPath string) {
		if strings.HasPrefix(importPath, modulePrefix+"modules/") || strings.HasPrefix(importPath, modulePrefix+"ui/") {
			t.Errorf("platform package %s imports %s", file, importPath)
		}
	})
}

func TestUIOnlySeesDTOs(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "ui"), func(file, importPath string) {
		if !strings.HasPrefix(importPath, modulePrefix+"modules/") {
			return
		}
		if detectLayer(importPath+"/") != "dto" {
			t.Errorf("ui package %s imports %s", file, importPath)
		}
	})
}

func walkImports(t *testing.T, root string, check func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			check(filepath.ToSlash(path), strings.Trim(imp.Path.Value, `"`))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "port/in", "port/out", "usecase", "service", "domain", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}
