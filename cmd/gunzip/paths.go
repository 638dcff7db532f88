package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

const gzipSuffix = ".gzip"

var errSameFile = errors.New("input and output are the same file")

// deriveName returns the base name of inputPath with a trailing
// case-insensitive ".gzip" removed.  Other suffixes, including ".gz", are
// kept.
func deriveName(inputPath string) (string, error) {
	name := filepath.Base(inputPath)
	if n := len(name) - len(gzipSuffix); n >= 0 && strings.EqualFold(name[n:], gzipSuffix) {
		name = name[:n]
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive an output file name from %q", inputPath)
	}
	return name, nil
}

// resolvePaths expands both paths and works out where the output goes.
func resolvePaths(inputPath, outputPath string) (string, string, error) {
	inputPath, err := homedir.Expand(inputPath)
	if err != nil {
		return "", "", err
	}

	if outputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		name, err := deriveName(inputPath)
		if err != nil {
			return "", "", err
		}
		return inputPath, filepath.Join(cwd, name), nil
	}

	outputPath, err = homedir.Expand(outputPath)
	if err != nil {
		return "", "", err
	}

	fi, err := os.Stat(outputPath)
	if err == nil && fi.IsDir() {
		name, err := deriveName(inputPath)
		if err != nil {
			return "", "", err
		}
		outputPath = filepath.Join(outputPath, name)
	}
	return inputPath, outputPath, nil
}

// checkNotSameFile refuses to truncate the input while reading it.
func checkNotSameFile(inputPath, outputPath string) error {
	fi1, err := os.Stat(inputPath)
	if err != nil {
		return err
	}
	fi2, err := os.Stat(outputPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if os.SameFile(fi1, fi2) {
		return fmt.Errorf("%s: %w", outputPath, errSameFile)
	}
	return nil
}
