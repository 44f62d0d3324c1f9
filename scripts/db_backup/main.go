package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hireloop/hireloop/internal/config"
)

// keepBackups is how many timestamped backups are retained; older ones are
// pruned after a successful copy.
const keepBackups = 5

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := cfg.DatabasePath
	dst := fmt.Sprintf("%s.%s.bak", src, time.Now().UTC().Format("20060102-150405"))

	if err := copyFile(src, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	pruned, err := pruneOld(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Prune error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backed up to %s (%d old backups pruned).\n", dst, pruned)
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// pruneOld removes all but the newest keepBackups backups of dbPath.
func pruneOld(dbPath string) (int, error) {
	backups, err := filepath.Glob(dbPath + ".*.bak")
	if err != nil {
		return 0, err
	}
	// timestamped names sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	pruned := 0
	for _, b := range backups[min(len(backups), keepBackups):] {
		if err := os.Remove(b); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
