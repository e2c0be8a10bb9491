// Package main provides the entry point for the skim CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/skimreader/skim/internal/cache"
	"github.com/skimreader/skim/reader"
	"github.com/skimreader/skim/segment"
	"github.com/skimreader/skim/ui"
	"github.com/skimreader/skim/utils"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	wpm        int
	offline    bool
	watchFile  bool
	modelName  string
	noCache    bool
	mouse      bool
	style      string
	width      uint

	rootCmd = &cobra.Command{
		Use:   "skim [SOURCE]",
		Short: "Speed-read text in your terminal, one chunk at a time",
		Long: paragraph(
			fmt.Sprintf("\nSpeed-read markdown and plain text with %s, chunk by chunk.", keyword("adaptive pacing")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	// grab config values from Viper
	wpm = viper.GetInt("wpm")
	offline = viper.GetBool("offline")
	watchFile = viper.GetBool("watch")
	modelName = viper.GetString("model")
	noCache = viper.GetBool("no-cache")
	mouse = viper.GetBool("mouse")
	style = viper.GetString("style")

	if wpm < 50 || wpm > 2000 {
		return fmt.Errorf("wpm must be between 50 and 2000, got %d", wpm)
	}

	// A style ending in .json is a custom glamour style on disk.
	if strings.HasSuffix(style, ".json") {
		style = utils.ExpandPath(style)
		if _, err := os.Stat(style); err != nil {
			return fmt.Errorf("unable to read style %q: %w", style, err)
		}
	}

	// Detect terminal width for the preview pane
	if !cmd.Flags().Changed("width") {
		isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}
			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(_ *cobra.Command, args []string) error {
	// .env keeps the API key out of shell history.
	_ = godotenv.Load()

	var content []byte
	var path string

	fromStdin := len(args) == 0 || args[0] == "-"
	if fromStdin {
		if yes, err := stdinIsPipe(); err != nil {
			return err
		} else if !yes {
			return errors.New("missing input: pass a file or pipe text on stdin")
		}
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("unable to read stdin: %w", err)
		}
		content = b
	} else {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("unable to open file: %w", err)
		}
		content = b
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("unable to get absolute path: %w", err)
		}
	}

	document := string(utils.RemoveFrontmatter(content))
	return runTUI(path, document)
}

// buildSegmenter picks the LLM segmenter when a key is available and the
// local heuristic otherwise.
func buildSegmenter() segment.Segmenter {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if offline || apiKey == "" {
		if !offline {
			log.Debug("no OPENAI_API_KEY; using heuristic segmenter")
		}
		return segment.Heuristic{}
	}

	seg, err := segment.NewOpenAISegmenter(segment.OpenAIConfig{
		APIKey: apiKey,
		Model:  modelName,
	})
	if err != nil {
		log.Debug("LLM segmenter unavailable; using heuristic", "err", err)
		return segment.Heuristic{}
	}
	return seg
}

// buildCache returns the chunk cache, or nil when caching is off or the
// cache dir is unusable.
func buildCache() segment.ChunkCache {
	if noCache {
		return nil
	}

	dir := ""
	if base, err := os.UserCacheDir(); err == nil {
		dir = filepath.Join(base, "skim")
	}

	store, err := cache.NewChunkStore(dir)
	if err != nil {
		log.Debug("chunk cache disabled", "err", err)
		return nil
	}
	return store
}

func runTUI(path string, document string) error {
	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.GlamourStyle == "" || cfg.GlamourStyle == "auto" {
		cfg.GlamourStyle = style
	}
	cfg.Path = path
	cfg.WPM = wpm
	cfg.Watch = watchFile
	cfg.GlamourMaxWidth = width
	cfg.EnableMouse = mouse

	timing := reader.DefaultTimingConfig()
	timing.BaseWPM = wpm
	timing.PauseCommaSemicolon = viper.GetInt("pause.comma")
	timing.PauseColonDash = viper.GetInt("pause.colon")
	timing.PauseSentenceEnd = viper.GetInt("pause.sentence")

	pipeline := segment.NewPipeline(buildSegmenter(), buildCache())
	session := reader.NewSession(pipeline, timing)
	if err := session.ProcessDocument(context.Background(), document); err != nil {
		return fmt.Errorf("unable to process document: %w", err)
	}

	// Run Bubble Tea program
	if _, err := ui.NewProgram(cfg, session, document).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().IntVar(&wpm, "wpm", 300, "base reading speed in words per minute")
	rootCmd.Flags().BoolVarP(&offline, "offline", "o", false, "segment locally without the LLM")
	rootCmd.Flags().BoolVar(&watchFile, "watch", false, "reload the source file when it changes")
	rootCmd.Flags().StringVar(&modelName, "model", "", "chat model for segmentation")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the chunk cache")
	rootCmd.Flags().StringVarP(&style, "style", "s", "auto", "glamour style for the preview pane")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap the preview at width (set to 0 to detect)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("wpm", rootCmd.Flags().Lookup("wpm"))
	_ = viper.BindPFlag("offline", rootCmd.Flags().Lookup("offline"))
	_ = viper.BindPFlag("watch", rootCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("no-cache", rootCmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("style", rootCmd.Flags().Lookup("style"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	viper.SetDefault("wpm", 300)
	viper.SetDefault("style", "auto")
	viper.SetDefault("pause.comma", 80)
	viper.SetDefault("pause.colon", 120)
	viper.SetDefault("pause.sentence", 220)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "skim")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "skim")}, dirs...)
	}

	if c := os.Getenv("SKIM_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("skim")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("skim")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "skim.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
