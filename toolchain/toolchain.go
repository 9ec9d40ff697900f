// Package toolchain drives the system LLVM tools that turn emitted IR
// text into runnable artifacts. The lowering core only ever hands over
// IR; everything past that point, object emission and linking, lives
// here.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Toolchain holds resolved paths to the external tools: llc for object
// emission, clang for linking.
type Toolchain struct {
	LLC string
	CC  string
}

// Find locates llc and clang on PATH.
func Find() (*Toolchain, error) {
	llc, err := exec.LookPath("llc")
	if err != nil {
		return nil, fmt.Errorf("llc not found: %w", err)
	}
	cc, err := exec.LookPath("clang")
	if err != nil {
		return nil, fmt.Errorf("clang not found: %w", err)
	}
	return &Toolchain{LLC: llc, CC: cc}, nil
}

// objectFlags returns the llc flags used for every object build. Shared
// with the cache hash so cached objects and fresh builds stay in sync.
func objectFlags() []string {
	return []string{"-filetype=obj", "-relocation-model=pic"}
}

// BuildObject writes ir to dir/name.ll and compiles it to dir/name.o.
func (tc *Toolchain) BuildObject(dir, name, ir string) (string, error) {
	llFile := filepath.Join(dir, name+".ll")
	objFile := filepath.Join(dir, name+".o")

	if err := os.WriteFile(llFile, []byte(ir), 0o644); err != nil {
		return "", fmt.Errorf("write IR: %w", err)
	}
	args := append(objectFlags(), llFile, "-o", objFile)
	if out, err := exec.Command(tc.LLC, args...).CombinedOutput(); err != nil {
		return "", fmt.Errorf("llc compilation failed: %s\n%s", err, out)
	}
	return objFile, nil
}

// BuildExecutable compiles ir to an object and links it into dir/name.
func (tc *Toolchain) BuildExecutable(dir, name, ir string) (string, error) {
	objFile, err := tc.BuildObject(dir, name, ir)
	if err != nil {
		return "", err
	}

	binFile := filepath.Join(dir, name)
	args := []string{"-fPIC", "-pie", objFile, "-o", binFile}
	if out, err := exec.Command(tc.CC, args...).CombinedOutput(); err != nil {
		return "", fmt.Errorf("linking failed: %s\n%s", err, out)
	}
	return binFile, nil
}
