package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/bandcamp-collector/internal/config"
	"github.com/handiism/bandcamp-collector/internal/download"
	"github.com/handiism/bandcamp-collector/internal/session"
)

// Exit codes: 0 all items downloaded or skipped, 1 at least one item
// failed (or a fatal setup error), 2 the collection resolved empty.
const (
	exitOK              = 0
	exitFailed          = 1
	exitEmptyCollection = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cookiesFlag   = flag.String("cookies", "", "Path to a Netscape cookies.txt exported from a logged-in browser")
		directoryFlag = flag.String("directory", "", "Output directory (overrides config)")
		formatFlag    = flag.String("format", "", "Download format, e.g. mp3-320, flac (overrides config)")
		parallelFlag  = flag.Int("parallel-downloads", 0, "Number of parallel downloads, 1 to 32 (overrides config)")
		forceFlag     = flag.Bool("force", false, "Re-download items even when the local file already matches")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag    = flag.Bool("dry-run", false, "Resolve the collection without downloading")
		configFlag    = flag.String("config", "", "Path to config file")
	)

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Bandcamp Collector - Download your Bandcamp collection")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  bandcamp-collector [options] <username>")
		fmt.Println()
		fmt.Println("For interactive mode, use: bandcamp-collector-tui")
		fmt.Println()
		flag.PrintDefaults()
		return exitFailed
	}
	username := flag.Arg(0)

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return exitFailed
		}
	}

	if *cookiesFlag != "" {
		settings.CookiesPath = *cookiesFlag
	}
	if *directoryFlag != "" {
		settings.DownloadsPath = *directoryFlag + "/{artist}"
	}
	if *formatFlag != "" {
		settings.Format = *formatFlag
	}
	if *parallelFlag != 0 {
		settings.Workers = *parallelFlag
	}
	if *forceFlag {
		settings.Force = true
		fmt.Println("! Force enabled: existing files will be re-downloaded")
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}

	sess, err := session.Load(settings.CookiesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cookies from %s: %v\n", settings.CookiesPath, err)
		fmt.Fprintln(os.Stderr, "Export cookies.txt from a browser logged in to bandcamp.com.")
		return exitFailed
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	manager := download.NewManager(settings, sess, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := "   "
		switch event.Level {
		case download.LevelError:
			prefix = "x "
		case download.LevelWarning:
			prefix = "! "
		case download.LevelSuccess:
			prefix = "+ "
		case download.LevelInfo:
			prefix = "> "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(ctx, username); err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving collection: %v\n", err)
		return exitFailed
	}

	if len(manager.Items()) == 0 {
		fmt.Fprintf(os.Stderr, "No purchases found for %q.\n", username)
		fmt.Fprintln(os.Stderr, "Check the username and make sure the cookies belong to that account.")
		return exitEmptyCollection
	}

	if *dryRunFlag {
		fmt.Printf("\n[Dry run] Would download %d item(s):\n", len(manager.Items()))
		for _, name := range manager.ItemNames() {
			fmt.Printf("  %s\n", name)
		}
		return exitOK
	}

	fmt.Printf("\nDownloading %d item(s) with %d worker(s)...\n\n", len(manager.Items()), settings.Workers)

	if _, err := manager.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}
	if ctx.Err() != nil {
		fmt.Println("\nDownload cancelled.")
		return 130
	}

	reporter := manager.Reporter()
	fmt.Println()
	fmt.Println(reporter.Summary())

	if reporter.HasFailures() {
		fmt.Println("\nFailed items:")
		for _, f := range reporter.Failures() {
			fmt.Printf("  %s: %s\n", f.Item.Name(), f.Detail)
		}
		return exitFailed
	}

	return exitOK
}
