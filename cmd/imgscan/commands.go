package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"image-browser/internal/errors"
	"image-browser/internal/media"
	"image-browser/internal/picker"
	"image-browser/internal/watcher"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the images directly inside a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := a.service(nil, nil).ScanFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(images)
		},
	}
}

func newAdjacentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adjacent <file>",
		Short: "List the images in the same folder as a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := a.service(nil, nil).AdjacentImages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(images)
		},
	}
}

func newTreeCmd(a *app) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree <dir>",
		Short: "Print the directory tree under a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.service(nil, nil).ListDirTree(cmd.Context(), args[0], depth)
			if err != nil {
				return err
			}
			return a.printJSON(tree)
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 1, "Levels below the root to expand")
	return cmd
}

func newMetaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "meta <file>",
		Short: "Print an image's dimensions, size and format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := a.service(nil, nil).ImageMetadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(meta)
		},
	}
}

// thumbResult is printed after a thumbnail is written.
type thumbResult struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
}

func newThumbCmd(a *app) *cobra.Command {
	var (
		output string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "thumb <file>",
		Short: "Write a JPEG thumbnail of an image",
		Long: `Write a JPEG thumbnail scaled to fit a size x size box.
Images smaller than the box keep their dimensions. Use -o - to write the
JPEG to stdout instead of printing a summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.service(nil, nil).Thumbnail(cmd.Context(), args[0], size)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := a.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.IO(err, "failed to write %s", output)
			}
			return a.printJSON(thumbResult{Source: args[0], Output: output, Bytes: len(data)})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the JPEG to, or - for stdout")
	cmd.Flags().IntVarP(&size, "size", "s", media.DefaultThumbnailSize, "Bounding box in pixels")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Print change events under a folder until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			changes := make(chan watcher.ChangeEvent, 64)
			registry := watcher.NewRegistry(watcher.SinkFunc(func(ev watcher.ChangeEvent) bool {
				select {
				case changes <- ev:
					return true
				default:
					return false
				}
			}))
			defer registry.Close()

			if err := a.service(registry, nil).StartWatch(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.errOut, "Watching %s (Ctrl+C to stop)\n", registry.Root())

			for printed := 0; count <= 0 || printed < count; printed++ {
				select {
				case <-ctx.Done():
					return nil
				case ev := <-changes:
					if err := a.printJSON(ev); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many events (0 runs until interrupted)")
	return cmd
}

func newPickCmd(a *app) *cobra.Command {
	var (
		folder bool
		path   string
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose an image (or a folder with --folder) and print it",
		Long: `Prompt for an image path on the terminal and print its descriptor.
With --folder, prompt for a folder and print its images. Prints null when
nothing was chosen, stdin is not a terminal, or the folder has no images.
--path answers the prompt non-interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.picker
			switch {
			case path != "" && folder:
				p = picker.Static{Folder: path}
			case path != "":
				p = picker.Static{File: path}
			case p == nil:
				p = picker.NewTerminal(a.in, a.errOut)
			}

			svc := a.service(nil, p)
			if folder {
				images, err := svc.PickImageFolder(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(images)
			}

			image, err := svc.PickImageFile(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(image)
		},
	}
	cmd.Flags().BoolVarP(&folder, "folder", "f", false, "Pick a folder instead of a file")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Answer the picker with this path")
	return cmd
}
