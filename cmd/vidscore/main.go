package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rootlab/vidscore/internal/cli"
	"github.com/rootlab/vidscore/internal/config"
	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/project"
	"github.com/rootlab/vidscore/internal/remote"
	"github.com/rootlab/vidscore/internal/scorelog"
	"github.com/rootlab/vidscore/internal/tui"
	"github.com/rootlab/vidscore/internal/version"
)

var appVersion = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vidscore <project>",
	Short: "vidscore - keyboard-driven video behavior scoring",
	Long: `vidscore scores behavior in video recordings from the keyboard.

A project names a video and collects its scored timestamps. A bare project
name resolves into ~/.vidscore/projects/; a path to a .json file is used
as-is. A new project needs --video and --frames on first open.

Examples:
  vidscore fish-trial --video fish.mp4 --frames 54000    # Create and score
  vidscore fish-trial                                    # Resume scoring
  vidscore fish-trial --remote 127.0.0.1:8765            # With remote bridge
  vidscore stats fish-trial                              # Print statistics
  vidscore export fish-trial -o scores.csv               # Export timestamps
  vidscore keybinds list                                 # Show bindings`,
	Version: appVersion,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runTUI(args[0])
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Inspect and manage keybindings",
}

var keybindsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active keybindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		return cli.KeybindsList(os.Stdout)
	},
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active keybindings to a config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		return cli.KeybindsExport(os.Stdout, flagKeybindsOut)
	},
}

var keybindsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a keybinding config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.KeybindsValidate(os.Stdout, path)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Export a project's timestamps to CSV or JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		return cli.ExportProject(os.Stdout, args[0], flagExportOut)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <project>",
	Short: "Print scoring statistics for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		return cli.StatsProject(os.Stdout, args[0])
	},
}

var logCmd = &cobra.Command{
	Use:   "log <project>",
	Short: "Show or prune the saved score-log records",
	Long: `The score log is the SQLite journal every saved timestamp is written to,
independent of the project file. Use it to inspect what has been scored, to
recover after a crash, or to prune stale records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}

		if flagLogDelete > 0 {
			return cli.DeleteLogRecord(os.Stdout, flagLogDelete)
		}

		project := ""
		if len(args) > 0 {
			project = args[0]
		}
		if flagLogClear {
			if project == "" {
				return fmt.Errorf("--clear needs a project")
			}
			return cli.ClearLog(os.Stdout, project)
		}
		if project == "" && flagLogVideo == "" {
			return fmt.Errorf("pass a project, or --video to query by video file")
		}
		return cli.ShowLog(os.Stdout, project, flagLogVideo)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("vidscore %s\n", appVersion)

		rel, err := version.Latest(appVersion)
		if err != nil {
			fmt.Printf("Update check failed: %v\n", err)
			return nil
		}
		if !rel.NewerThan(appVersion) {
			fmt.Println("Up to date")
			return nil
		}

		fmt.Printf("Update available: %s", rel.Version)
		if rel.Title != "" {
			fmt.Printf(" (%s)", rel.Title)
		}
		fmt.Printf("\n%s\n", rel.URL)
		if rel.Notes != "" {
			fmt.Printf("\n%s\n", rel.Notes)
		}
		return nil
	},
}

var (
	flagVideo   string
	flagFrames  int
	flagFPS     float64
	flagScoring string
	flagRemote  string

	flagKeybindsOut string
	flagExportOut   string

	flagLogVideo  string
	flagLogDelete int64
	flagLogClear  bool
)

func init() {
	rootCmd.Flags().StringVar(&flagVideo, "video", "", "Video file for a new project")
	rootCmd.Flags().IntVar(&flagFrames, "frames", 0, "Frame count for a new project")
	rootCmd.Flags().Float64Var(&flagFPS, "fps", 30, "Frames per second for a new project")
	rootCmd.Flags().StringVar(&flagScoring, "scoring", "onset/offset", "Scoring type for a new project (onset/offset or single)")
	rootCmd.Flags().StringVar(&flagRemote, "remote", "", "Serve the remote-control bridge on this address")

	keybindsExportCmd.Flags().StringVarP(&flagKeybindsOut, "output", "o", "", "Output file (stdout when omitted)")
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (.csv or .json)")
	exportCmd.MarkFlagRequired("output")

	logCmd.Flags().StringVar(&flagLogVideo, "video", "", "Query records by video file instead of project")
	logCmd.Flags().Int64Var(&flagLogDelete, "delete", 0, "Delete the record with this id")
	logCmd.Flags().BoolVar(&flagLogClear, "clear", false, "Delete every record for the project")

	keybindsCmd.AddCommand(keybindsListCmd)
	keybindsCmd.AddCommand(keybindsExportCmd)
	keybindsCmd.AddCommand(keybindsValidateCmd)

	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
}

// runTUI opens a scoring session for the project, creating it first if the
// project file does not exist yet.
func runTUI(projectArg string) error {
	projPath := config.ResolveProjectPath(projectArg)

	proj, err := loadOrCreateProject(projectArg, projPath)
	if err != nil {
		return err
	}

	settings, err := project.LoadSettings(config.SettingsFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return fmt.Errorf("failed to load keybinds: %w", err)
	}

	scores, err := scorelog.NewManager(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open score log: %w", err)
	}
	defer scores.Close()

	var bridge *remote.Server
	if flagRemote != "" {
		bridge = remote.NewServer(nil)
		if err := bridge.Listen(flagRemote); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Remote bridge listening on ws://%s/ws\n", bridge.Addr())
	}

	return tui.Run(tui.Options{
		Project:     proj,
		ProjectPath: projPath,
		Settings:    settings,
		Registry:    registry,
		Scores:      scores,
		Bridge:      bridge,
		Version:     appVersion,
	})
}

func loadOrCreateProject(projectArg, projPath string) (*project.Project, error) {
	if _, err := os.Stat(projPath); err == nil {
		return project.Load(projPath)
	}

	if flagVideo == "" || flagFrames <= 0 {
		return nil, fmt.Errorf("project %q does not exist; pass --video and --frames to create it", projectArg)
	}

	scoring := project.ScoringType(flagScoring)
	if scoring != project.ScoringOnsetOffset && scoring != project.ScoringSingle {
		return nil, fmt.Errorf("unknown scoring type %q", flagScoring)
	}

	proj := project.NewProject(projectArg, flagVideo, flagFrames, flagFPS, scoring)
	if err := proj.Save(projPath); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Created project %s (%s, %d frames)\n", projectArg, flagVideo, flagFrames)
	return proj, nil
}
