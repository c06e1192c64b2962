package debpatch

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// printHelp prints the commands table
func printHelp() {
	colSuccess.Println("Usage: debpatch <command> [arguments]")
	colSuccess.Println("Run 'debpatch <command>' for advanced options")
	fmt.Println()
	color.Info.Println("Available Commands:")

	type cmdInfo struct {
		Cmd  string
		Args string
		Desc string
	}
	cmds := []cmdInfo{
		{"build, b", "[-version <ver>] <pkg> <patch> <message>", "Patch and rebuild a source package"},
		{"install, i", "<pkg>", "Install previously built artifacts"},
		{"log", "<pkg>", "View the saved build log"},
		{"upload", "[pkgname...]", "Upload built artifacts to the configured bucket"},
		{"cleanup", "[options]", "Clear workspace roots"},
		{"version, --version", "", "Version information"},
	}

	// Find the longest usage string to size the first column.
	maxLen := 0
	for _, c := range cmds {
		length := len(c.Cmd) + len(c.Args)
		if c.Args != "" {
			length++
		}
		if length > maxLen {
			maxLen = length
		}
	}
	columnWidth := maxLen + 4

	for _, c := range cmds {
		var usageString string
		if c.Args != "" {
			usageString = fmt.Sprintf("  %s %s", c.Cmd, c.Args)
		} else {
			usageString = fmt.Sprintf("  %s", c.Cmd)
		}

		fmt.Print("  ")
		color.Bold.Print(c.Cmd)
		if c.Args != "" {
			fmt.Print(" ")
			color.Cyan.Print(c.Args)
		}

		pad := columnWidth - len(usageString)
		if pad < 1 {
			pad = 1
		}
		fmt.Print(strings.Repeat(" ", pad))
		color.Info.Println(c.Desc)
	}

	fmt.Println()
}

func printVersion() {
	fmt.Printf("debpatch %s (%s) built %s\n", version, arch, buildDate)
}

// Main is the CLI entrypoint for debpatch.
func Main() {
	// 1. CONTEXT AND SIGNAL SETUP
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// 2. SIGNAL HANDLING GOROUTINE
	go func() {
		for {
			select {
			case sig := <-sigs:
				if isCriticalAtomic.Load() == 1 {
					// dpkg is mid-transaction; block the first signal,
					// force exit only on a second one.
					colArrow.Print("\n-> ")
					colError.Printf("Package database operation in progress. Press Ctrl+C AGAIN to force exit NOW.\n")
					select {
					case <-sigs:
						colArrow.Print("\n-> ")
						colError.Printf("Forced immediate exit.")
						os.Exit(130)
					case <-time.After(5 * time.Second):
						continue
					case <-ctx.Done():
						return
					}
				} else {
					colArrow.Print("\n-> ")
					color.Danger.Printf("Received %v. Cancelling process gracefully\n", sig)
					cancel()
					time.Sleep(100 * time.Millisecond)
					select {
					case <-sigs:
						colArrow.Print("\n-> ")
						color.Danger.Printf("Second interrupt received. Forcing immediate exit.")
						os.Exit(130)
					case <-time.After(2 * time.Second):
						colArrow.Print("\n-> ")
						color.Danger.Printf("Graceful shutdown timeout. Exiting.")
						os.Exit(0)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	// 3. TERMINAL SETUP
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable()
	}

	if len(os.Args) < 2 {
		printHelp()
		return
	}

	// 4. CONFIGURATION
	configPath := ConfigFile
	if alt := os.Getenv("DEBPATCH_CONFIG"); alt != "" {
		configPath = alt
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", configPath, err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "--version":
		printVersion()
		return
	case "help", "-h", "--help":
		printHelp()
		return
	}

	if err := initConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}

	// 5. EXECUTORS
	UserExec = &Executor{Context: ctx, ShouldRunAsRoot: false}
	RootExec = &Executor{Context: ctx, ShouldRunAsRoot: true}

	// 6. COMMAND DISPATCH
	var cmdErr error
	switch os.Args[1] {
	case "build", "b":
		buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
		pin := buildCmd.String("version", "", "Exact upstream source version to fetch")
		if err := buildCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		if buildCmd.NArg() < 3 {
			fmt.Fprintln(os.Stderr, "Usage: debpatch build [-version <ver>] <pkg> <patch> <message>")
			os.Exit(1)
		}
		job := BuildJob{
			Package:   PackageID{Name: buildCmd.Arg(0), Version: *pin},
			PatchFile: buildCmd.Arg(1),
			Message:   strings.Join(buildCmd.Args()[2:], " "),
		}
		cmdErr = runPipeline(cfg, UserExec, RootExec, job, nil)

	case "install", "i":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: debpatch install <pkg>")
			os.Exit(1)
		}
		cmdErr = installBuilt(cfg, RootExec, os.Args[2])

	case "log":
		cmdErr = handleLogCommand(os.Args[2:], cfg)

	case "upload":
		cmdErr = handleUploadCommand(os.Args[2:], cfg)

	case "cleanup":
		// cleanup prompts on the TTY before each deletion; keep its
		// children in our process group so prompt and rm share the
		// terminal instead of being isolated for kill-on-cancel.
		RootExec.Interactive = true
		cmdErr = handleCleanupCommand(os.Args[2:], cfg)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", cmdErr)
		os.Exit(1)
	}
}
