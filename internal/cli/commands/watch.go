package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// mappingsFile is the watched YAML document. A null path clears the mapping.
type mappingsFile struct {
	Mappings map[string]*string `yaml:"mappings"`
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <shop-id> <mappings-file>",
		Short: "Apply a mappings file on every change",
		Long: `Watch a YAML mappings file and apply it to the shop whenever it changes,
reprocessing the shop once per change. The file maps attribute names to
extraction paths; a null path restores the registry default:

  mappings:
    brand: meta_data._brand
    color: attributes.Colour
    mpn: null

The file is applied once on startup. Press Ctrl-C to stop.`,
		Example: `  feedlift watch shop-1 mappings.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], args[1])
		},
	}
}

func runWatch(cmd *cobra.Command, shopID, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve mappings file: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors replace files on save and
	// the watch would die with the old inode.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	apply := func() {
		if err := applyMappingsFile(ctx, cmdCtx, shopID, absPath); err != nil {
			cmdCtx.Renderer.Errorf("apply failed: %v\n", err)
		}
	}

	cmdCtx.Renderer.Printf("Watching %s for shop %s\n", path, shopID)
	apply()

	var lastApplied time.Time
	for {
		select {
		case <-ctx.Done():
			cmdCtx.Renderer.Println("Stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire several events per save; one apply is enough.
			if time.Since(lastApplied) < 200*time.Millisecond {
				continue
			}
			lastApplied = time.Now()
			apply()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", err.Error())
		}
	}
}

// applyMappingsFile parses the YAML file and applies it to the shop.
func applyMappingsFile(ctx context.Context, cmdCtx *CommandContext, shopID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read mappings file: %w", err)
	}

	var doc mappingsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse mappings file: %w", err)
	}
	if len(doc.Mappings) == 0 {
		return fmt.Errorf("mappings file has no mappings section")
	}

	report, err := cmdCtx.Engine.ApplyShopMappings(ctx, shopID, doc.Mappings)
	if err != nil {
		return err
	}
	return renderReport(cmdCtx.Renderer, report)
}
