package lexigen

import (
	"fmt"
	"os"
)

// Run parses the .lexdecl declaration at inPath, compiles it, and writes the
// generated Go source to outPath in the given package.
func Run(inPath, outPath, pkg string) error {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("lexigen: reading %s: %w", inPath, err)
	}

	f, err := parseFile(string(src))
	if err != nil {
		return err
	}

	decl, hooks, err := toDeclaration(f)
	if err != nil {
		return err
	}

	c, err := compileDeclaration(decl, hooks)
	if err != nil {
		return err
	}

	out, err := generate(c, pkg)
	if err != nil {
		return fmt.Errorf("lexigen: generating %s: %w", outPath, err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("lexigen: writing %s: %w", outPath, err)
	}
	return nil
}
