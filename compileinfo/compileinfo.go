// Package compileinfo reports which build of assayplot is running, from the
// module and VCS metadata the Go toolchain embeds.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "Build information is unavailable for this binary."
	}

	version := ""
	if c.Version != "" && c.Version != "(devel)" {
		version = " " + c.Version
	}

	commit := ""
	if c.Commit != "" {
		commit = fmt.Sprintf(" at commit %v at time %v", c.Commit, c.CommitTime)
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s%s binary was built with %s%s.%s", c.Package, version, c.GoVersion, commit, mod)
}

// Get reads the build information of the running binary. Fields are empty
// when it was built without module support.
func Get() CompileInfo {
	return fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(z *debug.BuildInfo, ok bool) CompileInfo {
	out := CompileInfo{}
	if !ok || z == nil {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build information of the running binary to w.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}
