package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tobyrandall/crateclean/pkg/crateclean/canonical"
	"github.com/tobyrandall/crateclean/pkg/crateclean/config"
	"github.com/tobyrandall/crateclean/pkg/crateclean/inventory"
	"github.com/tobyrandall/crateclean/pkg/crateclean/reconcile"
	"github.com/tobyrandall/crateclean/pkg/crateclean/scanner"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

// runContext carries the resolved inputs shared by the commands.
type runContext struct {
	xmlPath       string
	roots         []string
	quarantineDir string
	manifestPath  string
	canon         canonical.Canonicalizer
}

// needXML controls whether buildRunContext requires --rekordbox-xml;
// restore and history only need the scan roots.
type inputRequirements struct {
	needXML bool
}

// buildRunContext validates flags and resolves paths. Every failure here is
// a configuration error: the run aborts before any mutation.
func buildRunContext(req inputRequirements) (*runContext, error) {
	rc := &runContext{}

	roots := viper.GetStringSlice("scan_roots")
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one --scan-root is required")
	}
	for _, r := range roots {
		expanded, err := config.ExpandPath(r)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("resolving scan root %s: %w", r, err)
		}
		rc.roots = append(rc.roots, abs)
	}

	if req.needXML {
		xmlPath := viper.GetString("rekordbox_xml")
		if xmlPath == "" {
			return nil, fmt.Errorf("--rekordbox-xml is required")
		}
		expanded, err := config.ExpandPath(xmlPath)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return nil, fmt.Errorf("rekordbox xml not found: %s", expanded)
		}
		rc.xmlPath = expanded
	}

	// The quarantine directory lives under the first scan root.
	rc.quarantineDir = filepath.Join(rc.roots[0], viper.GetString("quarantine_dir_name"))
	rc.manifestPath = filepath.Join(rc.quarantineDir, viper.GetString("manifest_name"))

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	rc.canon = canonical.New(cwd, homeDir, viper.GetBool("case_insensitive"))

	return rc, nil
}

// reconcileRun reads the collection, scans the roots and classifies every
// path. It performs no filesystem mutation.
func reconcileRun(ctx context.Context, rc *runContext) (*inventory.Collection, *scanner.Result, reconcile.Result, error) {
	col, err := inventory.Read(rc.xmlPath, rc.canon)
	if err != nil {
		return nil, nil, reconcile.Result{}, err
	}

	s := scanner.New(scanner.Options{
		Roots:             rc.roots,
		Extensions:        viper.GetStringSlice("extensions"),
		QuarantineDirName: viper.GetString("quarantine_dir_name"),
		IgnoreNames:       config.DefaultIgnoreNames,
		IgnorePrefixes:    config.DefaultIgnorePrefixes,
		Canonicalizer:     rc.canon,
	})
	scanRes, err := s.Scan(ctx)
	if err != nil {
		return nil, nil, reconcile.Result{}, err
	}

	return col, scanRes, reconcile.Reconcile(col.Referenced, scanRes.Set), nil
}

// pathsToStrings converts canonical paths for report rendering.
func pathsToStrings(paths []types.CanonicalPath) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

// scanWarnings converts non-fatal scan errors into report warnings.
func scanWarnings(errs []types.ScanError) []string {
	var warnings []string
	for _, e := range errs {
		warnings = append(warnings, fmt.Sprintf("%s: %s", e.Path, e.Error))
	}
	return warnings
}
