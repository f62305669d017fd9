package main

import (
	"fmt"
	"os"
	gopath "path"
	"sync"

	// Packages
	vimeo "github.com/mutablelogic/go-vimeo"
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
	store "github.com/mutablelogic/go-vimeo/pkg/store"
	errgroup "golang.org/x/sync/errgroup"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type UploadCommands struct {
	Upload UploadCommand `cmd:"" group:"UPLOAD" help:"Upload videos"`
}

type UploadCommand struct {
	Path     []string `arg:"" optional:"" name:"path" help:"Files to upload, or store keys when --from is set"`
	From     string   `name:"from" help:"Read content from a blob store (mem://, file:///path, s3://bucket) instead of local files"`
	Region   string   `name:"region" env:"AWS_REGION" optional:"" help:"Region for s3:// stores"`
	Parallel uint     `name:"parallel" default:"1" help:"Number of concurrent uploads"`
	Retries  uint     `name:"retries" default:"10" help:"Attempts without progress before an upload is abandoned"`
	schema.VideoProperties
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *UploadCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}

	// Resolve the content source. Without --from, paths are local files.
	var src vimeo.Store
	if cmd.From != "" {
		opts := []vimeo.Opt{}
		if cmd.Region != "" {
			opts = append(opts, vimeo.WithRegion(cmd.Region))
		}
		if src, err = store.New(ctx.ctx, cmd.From, opts...); err != nil {
			return err
		}
		defer src.Close()
	}

	// When a store is given without explicit keys, upload everything in it
	paths := cmd.Path
	if len(paths) == 0 {
		if src == nil {
			return fmt.Errorf("no files to upload")
		}
		if paths, err = src.List(ctx.ctx, ""); err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("store %v is empty", src)
		}
	}

	var props *schema.VideoProperties
	if !cmd.VideoProperties.IsZero() {
		props = &cmd.VideoProperties
	}

	// Progress is rendered only for serial uploads on a terminal; parallel
	// uploads would interleave on the same line
	tty := isTerminal(os.Stderr) && cmd.Parallel <= 1
	total := len(paths)
	width := len(fmt.Sprintf("%d", total))

	var mu sync.Mutex
	results := make([]*schema.UploadResult, total)
	group, groupctx := errgroup.WithContext(ctx.ctx)
	group.SetLimit(int(max(cmd.Parallel, 1)))
	for i, item := range paths {
		group.Go(func() error {
			fileTag := fmt.Sprintf("[%*d/%d]", width, i+1, total)
			opts := []vimeo.Opt{vimeo.WithRetries(cmd.Retries)}
			if tty {
				var lastPct int64 = -1
				opts = append(opts, vimeo.WithProgress(func(confirmed, size int64) {
					if size == 0 {
						return
					}
					if pct := confirmed * 100 / size; pct != lastPct {
						lastPct = pct
						fmt.Fprintf(os.Stderr, "\r\x1b[K  %s  %5d%%  \x1b[1m%s\x1b[0m", fileTag, pct, item)
					}
				}))
			}

			var result *schema.UploadResult
			var err error
			if src != nil {
				data, err2 := src.ReadAll(groupctx, item)
				if err2 != nil {
					return fmt.Errorf("%s: %w", item, err2)
				}
				result, err = c.Upload(groupctx, gopath.Base(item), data, props, opts...)
			} else {
				result, err = c.UploadFile(groupctx, item, props, opts...)
			}
			if err != nil {
				if tty {
					fmt.Fprintln(os.Stderr)
				}
				return fmt.Errorf("%s: %w", item, err)
			}
			results[i] = result

			mu.Lock()
			defer mu.Unlock()
			if tty {
				fmt.Fprintf(os.Stderr, "\r\x1b[K")
			}
			location := "-"
			if result.Video != nil {
				location = result.Video.URI
			}
			fmt.Fprintf(os.Stderr, "  %s  %s  %s\n", fileTag, location, item)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	// Report tolerated remote failures after the uploads have landed
	var warnings int
	for i, result := range results {
		if result == nil || result.Err() == nil {
			continue
		}
		warnings++
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", paths[i], result.Err())
	}
	if warnings == 0 {
		fmt.Fprintf(os.Stderr, "%d video(s) uploaded\n", total)
	} else {
		fmt.Fprintf(os.Stderr, "%d video(s) uploaded, %d with warnings\n", total, warnings)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
