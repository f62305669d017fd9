package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-vimeo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VideoCommands struct {
	Videos      ListVideosCommand  `cmd:"" group:"VIDEOS" help:"List videos"`
	Video       GetVideoCommand    `cmd:"" group:"VIDEOS" help:"Get video metadata"`
	PatchVideo  PatchVideoCommand  `cmd:"" group:"VIDEOS" help:"Set video properties"`
	DeleteVideo DeleteVideoCommand `cmd:"" group:"VIDEOS" help:"Delete video"`
}

type ListVideosCommand struct {
	schema.ListVideosRequest
	JSON bool `name:"json" help:"Output the listing as JSON"`
}

type GetVideoCommand struct {
	Id string `arg:"" name:"id" help:"Video identifier"`
}

type PatchVideoCommand struct {
	Id string `arg:"" name:"id" help:"Video identifier"`
	schema.VideoProperties
}

type DeleteVideoCommand struct {
	GetVideoCommand
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListVideosCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	videos, err := c.ListVideos(ctx.ctx, cmd.ListVideosRequest)
	if err != nil {
		return err
	}
	if cmd.JSON {
		return prettyJSON(videos)
	}
	return printVideos(videos)
}

func (cmd *GetVideoCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	video, err := c.GetVideo(ctx.ctx, cmd.Id)
	if err != nil {
		return err
	}
	return prettyJSON(video)
}

func (cmd *PatchVideoCommand) Run(ctx *Globals) error {
	if cmd.VideoProperties.IsZero() {
		return fmt.Errorf("no properties to set")
	}
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	video, err := c.PatchVideo(ctx.ctx, "/videos/"+cmd.Id, cmd.VideoProperties)
	if err != nil {
		return err
	}
	return prettyJSON(video)
}

func (cmd *DeleteVideoCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	return c.DeleteVideo(ctx.ctx, cmd.Id)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func prettyJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVideos renders videos in an ls-style table.
func printVideos(videos []schema.Video) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	bold := isTerminal(os.Stdout)
	for _, video := range videos {
		name := video.Name
		if bold {
			name = "\x1b[1m" + name + "\x1b[0m"
		}
		fmt.Fprintf(w, "%s\t%8s\t%-10s\t%-10s\t%s\n",
			video.Id(),
			formatDuration(video.Duration),
			videoStatus(&video),
			privacyView(&video),
			name,
		)
	}
	w.Flush()
	fmt.Fprintf(os.Stdout, "\n  %d video(s)\n", len(videos))
	return nil
}

// formatDuration formats a duration in seconds as "1h02m03s", trimming
// leading zero units. Returns "-" when the duration is not known.
func formatDuration(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds) * time.Second
	h := int64(d.Hours())
	m := int64(d.Minutes()) % 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func videoStatus(video *schema.Video) string {
	if video.Status == "" {
		return "-"
	}
	return strings.ToLower(video.Status)
}

func privacyView(video *schema.Video) string {
	if video.Privacy == nil || video.Privacy.View == "" {
		return "-"
	}
	return video.Privacy.View
}
