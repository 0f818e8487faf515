//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "rpncalc"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rpncalc"
	modulePath = "github.com/mesh-intelligence/rpncalc"
)

// ldflags stamps the version from the VERSION environment variable, if set.
func ldflags() string {
	v := os.Getenv("VERSION")
	if v == "" {
		return ""
	}
	return "-X " + modulePath + "/pkg/rpncalc.Version=" + v
}

// Build compiles the rpncalc binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if flags := ldflags(); flags != "" {
		args = append(args, "-ldflags", flags)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
