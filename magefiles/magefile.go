//go:build mage

// Package main provides build targets for rpncalc using Mage.
//
// Usage:
//
//	mage build        Compile rpncalc to bin/
//	mage install      Install rpncalc to GOPATH/bin
//	mage clean        Remove build artifacts
//	mage lint         Run golangci-lint
//	mage tidy         Run go mod tidy
//	mage test:all     Run every test with the race detector
//	mage test:unit    Run the pkg/ tests only
//	mage test:cover   Write a coverage profile to bin/coverage.out
//	mage stats        Print Go lines of code per package
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// skipDirs are never counted by Stats.
var skipDirs = []string{".git", "vendor", "magefiles", "_examples", binaryDir}

// Stats prints Go lines of code per package directory, split into
// production and test code.
func Stats() error {
	type counts struct{ prod, test int }
	perDir := map[string]*counts{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if slices.Contains(skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return nil
		}
		dir := filepath.Dir(path)
		c, ok := perDir[dir]
		if !ok {
			c = &counts{}
			perDir[dir] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(perDir))
	for dir := range perDir {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	var total counts
	fmt.Printf("%-24s %8s %8s\n", "PACKAGE", "PROD", "TEST")
	for _, dir := range dirs {
		c := perDir[dir]
		fmt.Printf("%-24s %8d %8d\n", dir, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-24s %8d %8d\n", "total", total.prod, total.test)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
