package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// TestFunc is one parsed test function.
type TestFunc struct {
	Name    string // function name, e.g. "TestAdd_StartPoint"
	Doc     string // doc comment text
	Line    int    // line in the source file
	IsTable bool   // range-over-cases with t.Run
}

// TestFile groups the test functions of one file.
type TestFile struct {
	Name  string
	Path  string
	Tests []TestFunc
}

// TestPackage groups the test files under one directory, keyed by the
// directory's path relative to the scan root.
type TestPackage struct {
	Name       string
	Files      []TestFile
	TotalTests int
}

// ParseTestFiles walks the tree under root and parses every *_test.go
// file, or only *_integration_test.go files when integrationOnly is
// set. Directories the go tool ignores (vendor, hidden, underscore)
// are skipped.
func ParseTestFiles(root string, integrationOnly bool) ([]TestPackage, error) {
	byDir := make(map[string]*TestPackage)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		if integrationOnly && !strings.HasSuffix(d.Name(), "_integration_test.go") {
			return nil
		}

		file, err := parseTestFile(path)
		if err != nil {
			return err
		}
		if len(file.Tests) == 0 {
			return nil
		}

		pkgPath, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || pkgPath == "." {
			pkgPath = filepath.Base(root)
		}

		pkg, ok := byDir[pkgPath]
		if !ok {
			pkg = &TestPackage{Name: pkgPath}
			byDir[pkgPath] = pkg
		}
		pkg.Files = append(pkg.Files, file)
		pkg.TotalTests += len(file.Tests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	packages := make([]TestPackage, 0, len(byDir))
	for _, pkg := range byDir {
		slices.SortFunc(pkg.Files, func(a, b TestFile) int {
			return strings.Compare(a.Name, b.Name)
		})
		packages = append(packages, *pkg)
	}
	slices.SortFunc(packages, func(a, b TestPackage) int {
		return strings.Compare(a.Name, b.Name)
	})

	return packages, nil
}

func parseTestFile(path string) (TestFile, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return TestFile{}, err
	}

	file := TestFile{Name: filepath.Base(path), Path: path}

	for _, decl := range parsed.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestSignature(fn) {
			continue
		}

		test := TestFunc{
			Name:    fn.Name.Name,
			Line:    fset.Position(fn.Pos()).Line,
			IsTable: isTableDriven(fn),
		}
		if fn.Doc != nil {
			test.Doc = strings.TrimSpace(fn.Doc.Text())
		}
		file.Tests = append(file.Tests, test)
	}

	return file, nil
}

// isTestSignature reports whether fn takes exactly one *testing.T or
// *testing.B, distinguishing tests from same-prefix helpers.
func isTestSignature(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}
	star, ok := fn.Type.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "testing" && (sel.Sel.Name == "T" || sel.Sel.Name == "B")
}

// isTableDriven detects the range-over-cases shape: any range loop
// whose body calls a Run method.
func isTableDriven(fn *ast.FuncDecl) bool {
	if fn.Body == nil {
		return false
	}

	found := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		loop, ok := n.(*ast.RangeStmt)
		if !ok {
			return true
		}
		ast.Inspect(loop.Body, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Run" {
					found = true
					return false
				}
			}
			return true
		})
		return !found
	})

	return found
}
