package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/generator"
	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/observability"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/selection"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

var (
	populateConfigPath string
	populateInput      string
	populateOutput     string
	populateSection    int
	populateKind       string
	populateUseBrowser bool
	populateVerbose    bool
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Populate a curriculum outline with resources",
	Long:  `Read a curriculum JSON file produced by the outline command and fill its sections with curated videos, worksheets, and activities.`,
	RunE:  runPopulate,
}

func init() {
	populateCmd.Flags().StringVar(&populateConfigPath, "config", "", "Path to config.json file")
	populateCmd.Flags().StringVarP(&populateInput, "input", "i", "curriculum.json", "Curriculum JSON file to populate")
	populateCmd.Flags().StringVarP(&populateOutput, "output", "o", "", "Output file path (defaults to overwriting the input)")
	populateCmd.Flags().IntVar(&populateSection, "section", -1, "Populate only this section index")
	populateCmd.Flags().StringVar(&populateKind, "kind", "", "Populate only one resource kind: videos, worksheets, or activities")
	populateCmd.Flags().BoolVar(&populateUseBrowser, "use-browser", false, "Use headless browser for JavaScript-heavy activity pages (requires Chrome)")
	populateCmd.Flags().BoolVarP(&populateVerbose, "verbose", "v", false, "Print selection summaries per section")

	rootCmd.AddCommand(populateCmd)
}

func runPopulate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(populateConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = populateUseBrowser
	}
	if populateVerbose {
		cfg.Verbose = true
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("a Gemini API key is required (GEMINI_API_KEY or config file)")
	}

	curriculum, err := readCurriculum(populateInput)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	gen, err := buildGenerator(ctx, client, cfg)
	if err != nil {
		return err
	}

	if err := populate(ctx, gen, curriculum); err != nil {
		return err
	}

	output := populateOutput
	if output == "" {
		output = populateInput
	}
	if err := writeJSON(output, curriculum); err != nil {
		return err
	}
	fmt.Printf("Populated curriculum written to %s\n", output)
	return nil
}

func buildGenerator(ctx context.Context, client llm.Client, cfg config.Config) (*generator.Generator, error) {
	var videos selection.VideoSearcher
	if cfg.YouTubeAPIKey != "" {
		yt, err := search.NewYouTubeClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return nil, err
		}
		videos = yt
	}

	var images selection.ImageSearcher
	var pages selection.PageSearcher
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		cs, err := search.NewCustomSearchClient(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			return nil, err
		}
		images = cs
		pages = cs
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}
	return generator.New(client, videos, images, pages, cfg, printer), nil
}

func populate(ctx context.Context, gen *generator.Generator, curriculum *types.Curriculum) error {
	if populateSection < 0 && populateKind == "" {
		return gen.PopulateAll(ctx, curriculum, func(event generator.ProgressEvent) {
			if event.Stage == generator.StageFailed {
				fmt.Fprintf(os.Stderr, "section %d %s: %s\n", event.SectionIndex, event.Kind, event.Error)
			}
		})
	}

	first := 0
	last := len(curriculum.Sections) - 1
	if populateSection >= 0 {
		first, last = populateSection, populateSection
	}

	for i := first; i <= last; i++ {
		if err := populateOne(ctx, gen, curriculum, i); err != nil {
			return err
		}
	}
	return nil
}

func populateOne(ctx context.Context, gen *generator.Generator, curriculum *types.Curriculum, index int) error {
	kinds := []generator.ResourceKind{generator.KindVideos, generator.KindWorksheets, generator.KindActivities}
	if populateKind != "" {
		kinds = []generator.ResourceKind{generator.ResourceKind(populateKind)}
	}

	for _, kind := range kinds {
		var err error
		switch kind {
		case generator.KindVideos:
			_, err = gen.PopulateVideos(ctx, curriculum, index)
		case generator.KindWorksheets:
			_, err = gen.PopulateWorksheets(ctx, curriculum, index)
		case generator.KindActivities:
			_, err = gen.PopulateActivities(ctx, curriculum, index)
		default:
			return fmt.Errorf("unknown resource kind %q (want videos, worksheets, or activities)", kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readCurriculum(path string) (*types.Curriculum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var curriculum types.Curriculum
	if err := json.Unmarshal(data, &curriculum); err != nil {
		return nil, fmt.Errorf("failed to parse curriculum file %s: %w", path, err)
	}
	if len(curriculum.Sections) == 0 {
		return nil, fmt.Errorf("curriculum file %s has no sections", path)
	}
	return &curriculum, nil
}
