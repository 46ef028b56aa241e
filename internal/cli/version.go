package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slrename/slrename/internal/buildinfo"
)

const defaultModulePath = "github.com/slrename/slrename"

// versionInfo is the version payload, assembled from the module build
// info with the ldflags-stamped values as fallback.
type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

// Swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show slrename version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("slrename %s\n", info.Version)
		fmt.Printf("module: %s\n", info.ModulePath)
		if info.Commit != "" {
			fmt.Printf("commit: %s\n", info.Commit)
		}
		if info.CommitTime != "" {
			fmt.Printf("commit_time: %s\n", info.CommitTime)
		}
		fmt.Printf("go: %s\n", info.GoVersion)
		fmt.Printf("platform: %s/%s\n", info.GOOS, info.GOARCH)
		fmt.Printf("modified: %t\n", info.Modified)
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
	if bi, ok := readBuildInfo(); ok && bi != nil {
		info.fillFromBuildInfo(bi)
	}
	info.fillFromLdflags()
	return info
}

func (v *versionInfo) fillFromBuildInfo(bi *debug.BuildInfo) {
	if bi.Main.Path != "" {
		v.ModulePath = bi.Main.Path
	}
	v.Version = normalizeVersion(bi.Main.Version)
	if bi.GoVersion != "" {
		v.GoVersion = bi.GoVersion
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	if goos := settings["GOOS"]; goos != "" {
		v.GOOS = goos
	}
	if goarch := settings["GOARCH"]; goarch != "" {
		v.GOARCH = goarch
	}
	v.Commit = settings["vcs.revision"]
	v.CommitTime = settings["vcs.time"]
	v.Modified = strings.EqualFold(settings["vcs.modified"], "true")
}

// fillFromLdflags fills whatever the build info left empty from the
// release-stamped values.
func (v *versionInfo) fillFromLdflags() {
	if v.Version == "devel" && buildinfo.Version != "" {
		v.Version = normalizeVersion(buildinfo.Version)
	}
	if v.Commit == "" {
		v.Commit = buildinfo.Commit
	}
	if v.CommitTime == "" {
		v.CommitTime = buildinfo.Date
	}
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
