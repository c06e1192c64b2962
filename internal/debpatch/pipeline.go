package debpatch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BuildJob carries the operator's request through the pipeline.
type BuildJob struct {
	Package   PackageID
	PatchFile string
	Message   string
}

// stageHook is called at each stage boundary. It receives the stage
// description and returns a completion callback taking the stage error.
// Narration lives here so the stages themselves stay silent about
// pipeline progress.
type stageHook func(stage string) func(error)

// defaultStageHook prints begin/end markers with elapsed time in the
// usual arrow style.
func defaultStageHook(stage string) func(error) {
	colArrow.Print("-> ")
	colSuccess.Println(stage)
	start := time.Now()
	return func(err error) {
		elapsed := time.Since(start).Truncate(time.Millisecond)
		if err != nil {
			cPrintf(colError, "Failed: %s after %s: %v\n", stage, elapsed, err)
			return
		}
		debugf("%s done in %s\n", stage, elapsed)
	}
}

// prepareWorkspace creates a fresh per-package root. A leftover root
// from a previous run is only removed after explicit operator
// confirmation; the pipeline is not re-entrant on a partially populated
// workspace.
func prepareWorkspace(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		cPrintf(colWarn, "Workspace %s already exists (previous run?).\n", dir)
		if !askForConfirmation(colArrow, "Delete it and start clean?") {
			return fmt.Errorf("workspace %s already exists; refusing to reuse it", dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing workspace %s: %w", dir, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking workspace %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", dir, err)
	}
	return nil
}

// runPipeline executes the whole patch-and-rebuild sequence:
// simulate deps, install deps, fetch source, locate the build root,
// apply the patch, bump the changelog, build, collect artifacts.
//
// Once the dependency set is installed its purge is guaranteed: the
// deferred release runs on every exit path, success and failure alike.
// A purge failure is reported but never masks the failure that got us
// there.
func runPipeline(cfg *Config, user, root runner, job BuildJob, hook stageHook) (err error) {
	if hook == nil {
		hook = defaultStageHook
	}
	name := job.Package.Name

	srcRoot := filepath.Join(cfg.SourcesDir, name)
	binRoot := filepath.Join(cfg.BinDir, name)
	if err := prepareWorkspace(srcRoot); err != nil {
		return err
	}
	if err := prepareWorkspace(binRoot); err != nil {
		return err
	}

	// DepsComputed
	done := hook("Simulating build dependencies for " + job.Package.Spec())
	deps, err := simulateBuildDeps(root, job.Package)
	done(err)
	if err != nil {
		return err
	}

	// DepsInstalled, with the purge armed the moment install succeeds
	if len(deps) > 0 {
		done = hook(fmt.Sprintf("Installing %d build dependencies", len(deps)))
		err = installPackages(root, deps)
		done(err)
		if err != nil {
			return err
		}
		defer func() {
			pdone := hook("Purging build dependencies")
			purgeErr := purgePackages(root, deps)
			pdone(purgeErr)
			if purgeErr != nil {
				cPrintf(colError, "Purge of build dependencies failed: %v\n", purgeErr)
				if err == nil {
					err = purgeErr
				}
			}
		}()
	} else {
		cPrintln(colInfo, "No additional build dependencies required.")
	}

	// SourceFetched
	done = hook("Fetching source for " + job.Package.Spec())
	err = fetchSource(user, job.Package, srcRoot)
	done(err)
	if err != nil {
		return err
	}

	buildRoot, err := findBuildRoot(srcRoot, name)
	if err != nil {
		return err
	}
	debugf("Build root: %s\n", buildRoot)

	// Patched
	done = hook("Applying " + filepath.Base(job.PatchFile))
	err = applyPatch(user, buildRoot, job.PatchFile)
	done(err)
	if err != nil {
		return err
	}

	// ChangelogUpdated
	done = hook("Updating change history")
	newVersion, err := updateChangelog(cfg, buildRoot, name, job.Message, time.Now())
	done(err)
	if err != nil {
		return err
	}
	colArrow.Print("-> ")
	colSuccess.Printf("New version: %s\n", newVersion)

	// Built
	done = hook("Building " + name)
	err = runBuild(user, buildRoot, binRoot)
	done(err)
	if err != nil {
		return err
	}

	// Collected
	done = hook("Collecting artifacts")
	artifacts, err := collectArtifacts(srcRoot, binRoot, job.PatchFile)
	done(err)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		cPrintf(colInfo, "  %s\n", filepath.Base(a))
	}

	colArrow.Print("-> ")
	colSuccess.Printf("%s %s built successfully, artifacts in %s\n", name, newVersion, binRoot)
	return nil
}
