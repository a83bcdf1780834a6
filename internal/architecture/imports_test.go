package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// layerRules maps a package prefix under internal/ to the internal prefixes it must not import.
var layerRules = []struct {
	layer  string
	forbid []string
}{
	{layer: "domain/", forbid: []string{"data", "services", "http", "app", "clients", "seed", "observability"}},
	{layer: "platform/", forbid: []string{"domain", "data", "services", "http", "app", "clients", "seed"}},
	{layer: "data/", forbid: []string{"services", "http", "app", "clients", "seed"}},
	{layer: "observability/", forbid: []string{"data", "services", "http", "app", "clients"}},
	{layer: "services/", forbid: []string{"http", "app", "clients", "seed"}},
	{layer: "http/", forbid: []string{"data", "app", "clients", "seed"}},
	{layer: "seed/", forbid: []string{"http", "app", "clients"}},
}

type importViolation struct {
	file string
	imp  string
	rule string
}

func TestImportBoundaries(t *testing.T) {
	root, modulePath := moduleInfo(t)
	internal := modulePath + "/internal/"

	violations := walkImports(t, root, func(rel, imp string) string {
		if !strings.HasPrefix(imp, internal) {
			return ""
		}
		target := strings.TrimPrefix(imp, internal)
		pkg := strings.TrimPrefix(rel, "internal/")
		for _, r := range layerRules {
			if !strings.HasPrefix(pkg, r.layer) {
				continue
			}
			for _, bad := range r.forbid {
				bad = strings.TrimSuffix(bad, "/")
				if target == bad || strings.HasPrefix(target, bad+"/") {
					return r.layer + " -> " + bad
				}
			}
		}
		return ""
	})
	report(t, "import boundary violations", violations)
}

// Only the composition root may reach the external clients.
func TestClientsImportedOnlyByApp(t *testing.T) {
	root, modulePath := moduleInfo(t)
	clients := modulePath + "/internal/clients/"

	violations := walkImports(t, root, func(rel, imp string) string {
		if !strings.HasPrefix(imp, clients) {
			return ""
		}
		if strings.HasPrefix(rel, "internal/app/") || strings.HasPrefix(rel, "internal/clients/") {
			return ""
		}
		return "clients outside app"
	})
	report(t, "internal/clients imported outside internal/app", violations)
}

func walkImports(t *testing.T, root string, check func(rel, imp string) string) []importViolation {
	t.Helper()
	fset := token.NewFileSet()
	var out []importViolation
	err := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			if rule := check(rel, imp); rule != "" {
				out = append(out, importViolation{file: rel, imp: imp, rule: rule})
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk internal/: %v", err)
	}
	return out
}

func report(t *testing.T, title string, violations []importViolation) {
	t.Helper()
	if len(violations) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(title + ":\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "- %s imports %q (%s)\n", v.file, v.imp, v.rule)
	}
	t.Fatal(b.String())
}

func moduleInfo(t *testing.T) (root, modulePath string) {
	t.Helper()
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root = start
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("go.mod not found from %s", start)
		}
		root = parent
	}

	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("open go.mod: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			return root, strings.TrimSpace(strings.TrimPrefix(line, "module "))
		}
	}
	t.Fatalf("module path not found in go.mod")
	return "", ""
}
