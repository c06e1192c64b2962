package debpatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
)

// uploadPrefix is where artifacts land in the bucket.
const uploadPrefix = "pool/"

// handleUploadCommand implements 'debpatch upload': push every built
// artifact (plus its patch and provenance files) from the binary output
// root to the configured bucket, skipping objects that already exist.
func handleUploadCommand(args []string, cfg *Config) error {
	ctx := context.Background()

	bucket, err := NewBucketClient(cfg)
	if err != nil {
		return err
	}

	colArrow.Print("-> ")
	colSuccess.Println("Listing remote objects")
	remote, err := bucket.ListKeys(ctx, uploadPrefix)
	if err != nil {
		return fmt.Errorf("listing bucket: %w", err)
	}

	// Optional package-name arguments narrow the scan; default is
	// everything under the binary root.
	pkgGlobs := args
	if len(pkgGlobs) == 0 {
		pkgGlobs = []string{"*"}
	}

	var files []string
	for _, pkg := range pkgGlobs {
		for _, pattern := range []string{"*.deb", "*.patch", "*.diff", "*.b3sum"} {
			matches, err := filepath.Glob(filepath.Join(cfg.BinDir, pkg, pattern))
			if err != nil {
				return err
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		cPrintln(colWarn, "No artifacts to upload.")
		return nil
	}
	sort.Strings(files)

	var uploaded int
	for _, file := range files {
		key := uploadPrefix + filepath.Base(file)
		if remote[key] {
			debugf("Skipping %s (already uploaded)\n", key)
			continue
		}
		colArrow.Print("-> ")
		colSuccess.Printf("Uploading %s\n", key)
		if err := bucket.UploadLocalFile(ctx, key, file); err != nil {
			return fmt.Errorf("uploading %s: %w", key, err)
		}
		uploaded++
	}

	colArrow.Print("-> ")
	colSuccess.Printf("Upload complete: %d new object(s).\n", uploaded)
	return nil
}
