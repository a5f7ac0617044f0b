// Package dmrlink holds the build identification shared by the dmrlink
// packages and commands.
package dmrlink

import (
	"fmt"
	"runtime"
)

var (
	Version    = "0.3.0"                                             // Version number
	SoftwareID = fmt.Sprintf("%s dmrlink %s", Version, runtime.GOOS) // Software identifier
	PackageID  = fmt.Sprintf("%s/%s", SoftwareID, runtime.GOARCH)    // Package identifier
)
