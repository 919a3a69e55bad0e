/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/fulmenhq/appxpack/pkg/checksum"
	"github.com/fulmenhq/appxpack/pkg/config"
	"github.com/fulmenhq/appxpack/pkg/contenttypes"
	"github.com/fulmenhq/appxpack/pkg/logger"
	"github.com/fulmenhq/appxpack/pkg/mimemap"
)

// Package parts that are always declared individually, as the packer does.
const (
	appxManifestFile = "AppxManifest.xml"
	appxBlockMapFile = "AppxBlockMap.xml"
)

// newBuildCommand creates a fresh build command instance.
func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <dir>",
		Short: "Build a content-types manifest for a directory of package files",
		Long: `Build walks a directory of package content and emits the [Content_Types].xml
manifest declaring a content type for every file: one Default rule per
extension, Override rules for the well-known AppX parts and for files whose
type diverges from their extension's default.

With --append the manifest is built on top of a previously produced one, so
overrides already declared by an earlier signing stage are not duplicated.`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (defaults to [Content_Types].xml in the working directory)")
	cmd.Flags().String("append", "", "Existing manifest to append declarations to (re-signing flow)")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns (doublestar) of files to skip, relative to <dir>")
	cmd.Flags().String("mime-map", "", "Extension table overlay file (.yaml, .json, or .toml)")
	cmd.Flags().Bool("hash", false, "Also write a SHA256 digest sidecar next to the manifest")
	return cmd
}

// buildCmd represents the build command
var buildCmd = newBuildCommand()

func runBuild(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.Build.Output
	}
	mimeMapPath, _ := cmd.Flags().GetString("mime-map")
	if mimeMapPath == "" {
		mimeMapPath = cfg.Build.MimeMap
	}
	appendPath, _ := cmd.Flags().GetString("append")
	excludes, _ := cmd.Flags().GetStringSlice("exclude")
	excludes = append(excludes, cfg.Build.Exclude...)
	hash, _ := cmd.Flags().GetBool("hash")
	hash = hash || cfg.Build.Hash

	table, err := loadMimeTable(mimeMapPath)
	if err != nil {
		return err
	}

	files, err := collectFiles(dir, excludes)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no package files found under %s", dir)
	}

	wk := contenttypes.DefaultWellKnown()
	writer, err := newWriter(wk, appendPath)
	if err != nil {
		return err
	}

	forced := map[string]string{
		appxManifestFile:     contenttypes.ManifestContentType,
		appxBlockMapFile:     contenttypes.BlockMapContentType,
		wk.SignatureFile:     contenttypes.SignatureContentType,
		wk.CodeIntegrityFile: contenttypes.CodeIntegrityContentType,
	}

	for _, name := range files {
		if ct, ok := forced[name]; ok {
			err = writer.AddContentType(name, ct, true)
		} else {
			err = writer.AddContentType(name, table.ResolveOrDefault(name), false)
		}
		if err != nil {
			return err
		}
	}

	manifest, err := writer.Close()
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, manifest, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Info("Wrote content-types manifest",
		logger.String("output", output),
		logger.Int("files", len(files)))

	if hash {
		if err := writeDigestSidecar(dir, files, output+".sha256.json"); err != nil {
			return err
		}
	}
	return nil
}

// newWriter starts fresh or appends inside an existing manifest.
func newWriter(wk contenttypes.WellKnown, appendPath string) (*contenttypes.Writer, error) {
	if appendPath == "" {
		return contenttypes.New(wk), nil
	}
	existing, err := os.ReadFile(appendPath) // #nosec G304 -- user-supplied manifest path
	if err != nil {
		return nil, fmt.Errorf("failed to read existing manifest %s: %w", appendPath, err)
	}
	return contenttypes.NewFromManifest(existing, wk)
}

// loadMimeTable returns the embedded extension table, merged with the user
// overlay when one is configured.
func loadMimeTable(overlayPath string) (*mimemap.Map, error) {
	table, err := mimemap.Default()
	if err != nil {
		return nil, err
	}
	if overlayPath == "" {
		return table, nil
	}
	overlay, err := mimemap.Load(overlayPath)
	if err != nil {
		return nil, err
	}
	table.Merge(overlay)
	logger.Debug("Merged mime map overlay",
		logger.String("path", overlayPath),
		logger.Int("entries", overlay.Len()))
	return table, nil
}

// collectFiles lists the package files under dir as sorted, slash-separated
// paths relative to dir. The manifest itself and excluded globs are skipped.
func collectFiles(dir string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == config.DefaultOutputName {
			return nil
		}
		for _, pattern := range excludes {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				logger.Debug("Excluded file", logger.String("file", rel))
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// writeDigestSidecar digests the package files and writes the records as a
// JSON sidecar for the downstream block map and signing stages.
func writeDigestSidecar(dir string, files []string, path string) error {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(dir, filepath.FromSlash(f))
	}
	digests, err := checksum.DigestFiles(paths)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(digests, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Wrote digest sidecar", logger.String("output", path))
	return nil
}
