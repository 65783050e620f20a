package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reelstore/internal/archive"
	"reelstore/internal/config"
	"reelstore/internal/meta"
	"reelstore/internal/movies"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var id string
	var thumbPath string
	var starter bool

	cmd := &cobra.Command{
		Use:   "save <container>",
		Short: "Save a movie container, allocating an id when none is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read container: %w", err)
			}

			var thumb []byte
			if strings.TrimSpace(thumbPath) != "" {
				thumb, err = os.ReadFile(thumbPath)
				if err != nil {
					return fmt.Errorf("read thumbnail: %w", err)
				}
			} else if _, packed, err := archive.Unpack(body); err == nil && len(packed) > 0 {
				// Fall back to the thumbnail carried inside the container.
				thumb = packed
			}

			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				saved, err := svc.Save(cmd.Context(), body, thumb, id, movies.KindForStarter(starter))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved movie %s\n", saved)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Overwrite an existing movie in place")
	cmd.Flags().StringVar(&thumbPath, "thumbnail", "", "Thumbnail PNG to store alongside the document")
	cmd.Flags().BoolVar(&starter, "starter", false, "Store as a starter template in the assets collection")
	return cmd
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var starter bool

	cmd := &cobra.Command{
		Use:   "upload <container>",
		Short: "Import a container under a fresh id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read container: %w", err)
			}
			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				id, err := svc.Upload(cmd.Context(), body, movies.KindForStarter(starter))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded movie %s\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&starter, "starter", false, "Store as a starter template in the assets collection")
	return cmd
}

func newLoadCommand(ctx *commandContext) *cobra.Command {
	var output string
	var raw bool

	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Repack a stored movie into its portable container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(output) == "" {
				return fmt.Errorf("--output is required")
			}
			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				payload, err := svc.Load(cmd.Context(), args[0], raw)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, payload, 0o644); err != nil {
					return fmt.Errorf("write container: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(payload), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file for the container")
	cmd.Flags().BoolVar(&raw, "raw", false, "Skip the legacy player framing byte")
	return cmd
}

func newThumbCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "thumb <id>",
		Short: "Extract a movie's thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(output) == "" {
				return fmt.Errorf("--output is required")
			}
			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				stream, err := svc.Thumbnail(args[0])
				if err != nil {
					return err
				}
				defer stream.Close()

				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()

				if _, err := file.ReadFrom(stream); err != nil {
					return fmt.Errorf("write thumbnail: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote thumbnail to %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file for the thumbnail")
	return cmd
}

func newCuesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cues <id>",
		Short: "List a movie's audio cues as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				cues, err := svc.AudioCues(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, cues)
			})
		},
	}
}

func newMetaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "meta <id>",
		Short: "Show metadata derived from a stored movie document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				record, err := svc.Meta(cmd.Context(), args[0])
				if err != nil && !errors.Is(err, meta.ErrMalformedDocument) {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", record.ID)
				fmt.Fprintf(out, "Title:     %s\n", record.Title)
				fmt.Fprintf(out, "Duration:  %s (%g s)\n", record.DurationString, record.Duration)
				fmt.Fprintf(out, "Scenes:    %d\n", record.SceneCount)
				if record.Type != "" {
					fmt.Fprintf(out, "Type:      %s\n", record.Type)
				}
				fmt.Fprintf(out, "Modified:  %s\n", record.Date.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a movie's files and index records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				if err := svc.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted movie %s\n", args[0])
				return nil
			})
		},
	}
}
