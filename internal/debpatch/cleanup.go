package debpatch

import (
	"flag"
	"fmt"
	"os/exec"
)

// handleCleanupCommand clears the workspace roots. This is also the
// recovery path after a run that died between patch application and the
// changelog rewrite: that workspace is an unsupported state and must be
// cleared before a retry.
func handleCleanupCommand(args []string, cfg *Config) error {
	cleanupCmd := flag.NewFlagSet("cleanup", flag.ExitOnError)
	cleanSources := cleanupCmd.Bool("sources", false, "Remove all fetched source trees.")
	cleanBins := cleanupCmd.Bool("bins", false, "Remove all built artifacts and logs.")
	cleanAll := cleanupCmd.Bool("all", false, "Sources and artifacts.")

	if err := cleanupCmd.Parse(args); err != nil {
		return err // Should not happen with flag.ExitOnError
	}

	// If no flags are provided, show help and exit
	if !*cleanSources && !*cleanBins && !*cleanAll {
		fmt.Println("Usage: debpatch cleanup [flag]")
		fmt.Println("You must specify what to clean up. Use one of the following flags:")
		cleanupCmd.PrintDefaults()
		return nil
	}

	if *cleanAll {
		*cleanSources = true
		*cleanBins = true
	}

	if *cleanSources {
		cPrintf(colWarn, "This will permanently delete all fetched sources at %s.\n", cfg.SourcesDir)
		if askForConfirmation(colArrow, "Are you sure you want to proceed?") {
			// Source trees built with dpkg-buildpackage can contain
			// root-owned files, so remove via the root executor.
			rmCmd := exec.Command("rm", "-rf", cfg.SourcesDir)
			if err := RootExec.Run(rmCmd); err != nil {
				return fmt.Errorf("failed to remove source workspace: %w", err)
			}
			colArrow.Print("-> ")
			colSuccess.Println("Source workspace removed successfully.")
		} else {
			colArrow.Print("-> ")
			colSuccess.Println("Cleanup of source workspace canceled.")
		}
	}

	if *cleanBins {
		cPrintf(colWarn, "This will permanently delete all built artifacts at %s.\n", cfg.BinDir)
		if askForConfirmation(colArrow, "Are you sure you want to proceed?") {
			rmCmd := exec.Command("rm", "-rf", cfg.BinDir)
			if err := RootExec.Run(rmCmd); err != nil {
				return fmt.Errorf("failed to remove artifact root: %w", err)
			}
			colArrow.Print("-> ")
			colSuccess.Println("Artifact root removed successfully.")
		} else {
			colArrow.Print("-> ")
			colSuccess.Println("Cleanup of artifact root canceled.")
		}
	}

	return nil
}
