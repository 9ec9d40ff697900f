package compiler

import (
	"fmt"
	"runtime"
)

// Target identifies the machine the finished module is annotated for.
type Target struct {
	Triple     string
	DataLayout string
}

// HostTarget resolves the target for the machine the compiler is running
// on. Known GOOS/GOARCH pairs get exact triples and data layouts; anything
// else falls back to a generic triple and leaves the layout for downstream
// tools to infer.
func HostTarget() Target {
	return resolveTarget(runtime.GOOS, runtime.GOARCH)
}

func resolveTarget(goos, goarch string) Target {
	switch goos + "/" + goarch {
	case "linux/amd64":
		return Target{
			Triple:     "x86_64-unknown-linux-gnu",
			DataLayout: "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-i128:128-f80:128-n8:16:32:64-S128",
		}
	case "linux/arm64":
		return Target{
			Triple:     "aarch64-unknown-linux-gnu",
			DataLayout: "e-m:e-i8:8:32-i16:16:32-i64:64-i128:128-n32:64-S128",
		}
	case "darwin/amd64":
		return Target{
			Triple:     "x86_64-apple-macosx",
			DataLayout: "e-m:o-p270:32:32-p271:32:32-p272:64:64-i64:64-i128:128-f80:128-n8:16:32:64-S128",
		}
	case "darwin/arm64":
		return Target{
			Triple:     "arm64-apple-macosx",
			DataLayout: "e-m:o-i64:64-i128:128-n32:64-S128",
		}
	}
	return Target{Triple: fmt.Sprintf("%s-unknown-%s", archName(goarch), goos)}
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i386"
	}
	return goarch
}
