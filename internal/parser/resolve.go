package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// stdlibPrefix marks module paths fern.dev itself provides (spec.md §4.4);
// those never touch the filesystem.
const stdlibPrefix = "fern.dev/"

// ResolveImports checks every top-level Import statement in file against
// sourceDirs, the fern.json manifest's configured search path. A stdlib
// import (fern.dev/...) always resolves; anything else must exist as a
// "<path with dots as separators>.fn" file under one of sourceDirs.
func ResolveImports(file *ast.File, sourceDirs []string) []*Error {
	var errs []*Error
	for _, stmt := range file.Stmts {
		imp, ok := stmt.(ast.Import)
		if !ok {
			continue
		}
		if strings.HasPrefix(imp.Path, stdlibPrefix) {
			continue
		}
		if _, ok := resolveLocalImport(imp.Path, sourceDirs); !ok {
			errs = append(errs, &Error{
				Message: fmt.Sprintf("cannot resolve import %q in %v", imp.Path, sourceDirs),
				Token:   token.Token{Pos: imp.Position()},
			})
		}
	}
	return errs
}

func resolveLocalImport(path string, sourceDirs []string) (string, bool) {
	rel := strings.ReplaceAll(path, ".", string(filepath.Separator)) + ".fn"
	for _, dir := range sourceDirs {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
