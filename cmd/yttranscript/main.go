package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MimeLyc/youtube-transcript/internal/config"
	"github.com/MimeLyc/youtube-transcript/internal/fetch"
	"github.com/MimeLyc/youtube-transcript/internal/format"
	"github.com/MimeLyc/youtube-transcript/internal/youtube"
	"github.com/MimeLyc/youtube-transcript/pkg/file"
	"github.com/MimeLyc/youtube-transcript/pkg/log"
)

var (
	flagLanguages     []string
	flagFormat        string
	flagPreserve      bool
	flagManualOnly    bool
	flagGeneratedOnly bool
	flagTranslate     string
	flagList          bool
	flagOutput        string
	flagConcurrency   int
	flagVerbose       bool

	rootCmd = &cobra.Command{
		Use:   "yttranscript [flags] <video id> [<video id>...]",
		Short: "Fetch YouTube transcripts without the official API",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
		Long: `yttranscript resolves the caption tracks of one or more YouTube videos,
selects the best track for your language preferences (manually created
tracks win over auto-generated ones), and prints the timed text in the
requested output format.`,
		SilenceUsage: true,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringSliceVarP(&flagLanguages, "languages", "l", nil, "ordered language preference list (e.g. de,en)")
	flags.StringVarP(&flagFormat, "format", "f", "text", fmt.Sprintf("output format, one of %v", format.Names()))
	flags.BoolVar(&flagPreserve, "preserve-formatting", false, "keep inline formatting tags in the caption text")
	flags.BoolVar(&flagManualOnly, "manual-only", false, "only consider manually created tracks")
	flags.BoolVar(&flagGeneratedOnly, "generated-only", false, "only consider auto-generated tracks")
	flags.StringVar(&flagTranslate, "translate", "", "translate the selected track into this language code")
	flags.BoolVar(&flagList, "list", false, "list available caption tracks instead of fetching")
	flags.StringVarP(&flagOutput, "output", "o", "", "output file (or directory when fetching several videos)")
	flags.IntVar(&flagConcurrency, "concurrency", 0, "parallel fetches for multiple videos (default from config)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagManualOnly && flagGeneratedOnly {
		return fmt.Errorf("--manual-only and --generated-only are mutually exclusive")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if flagVerbose {
		log.InitLogger(zerolog.DebugLevel)
	} else {
		log.InitLogger(log.ParseLevel(cfg.Log.Level))
	}

	languages := cfg.Fetch.Languages
	if len(flagLanguages) > 0 {
		languages = flagLanguages
	}
	concurrency := cfg.Fetch.Concurrency
	if flagConcurrency > 0 {
		concurrency = flagConcurrency
	}

	transport, err := fetch.New(cfg.HTTP)
	if err != nil {
		return err
	}
	client := youtube.NewClient(transport)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagList {
		return runList(ctx, client, args)
	}

	formatter, err := format.New(flagFormat)
	if err != nil {
		return err
	}

	// The batch path only covers the default selection policy; restricted
	// or translated fetches go through the single-video path per id.
	if len(args) > 1 && !flagManualOnly && !flagGeneratedOnly && flagTranslate == "" {
		return runBatch(ctx, client, formatter, args, languages, concurrency)
	}

	var failed bool
	for _, videoID := range args {
		transcript, err := fetchOne(ctx, client, videoID, languages)
		if err != nil {
			log.Error("%v", err)
			failed = true
			continue
		}
		if err := emit(formatter, transcript, len(args) > 1); err != nil {
			return err
		}
	}
	if failed {
		return fmt.Errorf("one or more videos failed")
	}
	return nil
}

func runList(ctx context.Context, client *youtube.Client, videoIDs []string) error {
	var failed bool
	for _, videoID := range videoIDs {
		list, err := client.ListTranscripts(ctx, videoID)
		if err != nil {
			log.Error("%v", err)
			failed = true
			continue
		}
		fmt.Print(list)
	}
	if failed {
		return fmt.Errorf("one or more videos failed")
	}
	return nil
}

func runBatch(ctx context.Context, client *youtube.Client, formatter format.Formatter, videoIDs, languages []string, concurrency int) error {
	results := client.FetchBatch(ctx, videoIDs, languages, concurrency, flagPreserve)

	var failed bool
	for _, result := range results {
		if result.Err != nil {
			log.Error("%v", result.Err)
			failed = true
			continue
		}
		if err := emit(formatter, result.Transcript, true); err != nil {
			return err
		}
	}
	if failed {
		return fmt.Errorf("one or more videos failed")
	}
	return nil
}

func fetchOne(ctx context.Context, client *youtube.Client, videoID string, languages []string) (*youtube.Transcript, error) {
	list, err := client.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}

	var track *youtube.CaptionTrack
	switch {
	case flagManualOnly:
		track, err = list.FindManuallyCreatedTranscript(languages...)
	case flagGeneratedOnly:
		track, err = list.FindGeneratedTranscript(languages...)
	default:
		track, err = list.FindTranscript(languages...)
	}
	if err != nil {
		return nil, err
	}

	if flagTranslate != "" {
		track, err = track.Translate(flagTranslate)
		if err != nil {
			return nil, err
		}
	}

	return client.FetchTrack(ctx, track, flagPreserve)
}

// emit writes one formatted transcript to stdout or to the configured
// output path.
func emit(formatter format.Formatter, transcript *youtube.Transcript, multi bool) error {
	doc, err := formatter.Format(transcript)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		if multi {
			fmt.Printf("==> %s <==\n", transcript.VideoID)
		}
		fmt.Println(doc)
		return nil
	}

	path := file.EnsureExt(flagOutput, formatter.Extension())
	if multi {
		// With several videos the output flag names a directory.
		if err := os.MkdirAll(flagOutput, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path = filepath.Join(flagOutput, transcript.VideoID+"."+formatter.Extension())
	}

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("wrote %s", path)
	return nil
}
