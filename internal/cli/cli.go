package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rootlab/vidscore/internal/config"
	"github.com/rootlab/vidscore/internal/export"
	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/project"
	"github.com/rootlab/vidscore/internal/scorelog"
	"github.com/rootlab/vidscore/internal/stats"
)

// KeybindsList prints the active bindings, one per line.
func KeybindsList(w io.Writer) error {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	for _, binding := range registry.Bindings() {
		info := keybinds.InfoFor(binding.Action)
		fmt.Fprintf(w, "%-16s %-26s %s\n", binding.Chord.Label(), binding.Action, info.Help)
	}

	bound := map[keybinds.Action]bool{}
	for _, binding := range registry.Bindings() {
		bound[binding.Action] = true
	}
	for _, action := range keybinds.AllActions {
		if !bound[action] {
			fmt.Fprintf(w, "%-16s %-26s %s\n", "(unbound)", action, keybinds.InfoFor(action).Help)
		}
	}
	return nil
}

// KeybindsExport writes the active bindings as a config file, stdout when
// path is empty.
func KeybindsExport(w io.Writer, path string) error {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if path == "" {
		for _, binding := range registry.Bindings() {
			fmt.Fprintf(w, "%s: %s\n", binding.Action, binding.Chord.Label())
		}
		return nil
	}
	if err := keybinds.SaveConfig(keybinds.ExportConfig(registry), path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d bindings to %s\n", registry.Len(), path)
	return nil
}

// KeybindsValidate checks a keybind config file and prints the findings.
// A file with errors returns a non-nil error so the exit code reflects it.
func KeybindsValidate(w io.Writer, path string) error {
	if path == "" {
		path = config.KeybindsFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "%s does not exist; stock bindings are in effect\n", path)
		return nil
	}

	cfg, err := keybinds.LoadConfig(path)
	if err != nil {
		return err
	}

	validator := keybinds.NewValidator()
	result := validator.ValidateConfig(cfg)
	fmt.Fprintln(w, result.String())
	if result.HasErrors() {
		return fmt.Errorf("%d invalid entries in %s", len(result.Errors), path)
	}

	// The file is sound; also check the registry it produces, so unbound
	// actions and rebound reserved chords surface before a session starts.
	registry := keybinds.NewDefaultRegistry()
	if err := keybinds.ApplyConfig(registry, cfg); err != nil {
		return err
	}
	if live := validator.ValidateRegistry(registry); live.HasWarnings() {
		fmt.Fprintf(w, "\nEffective bindings:\n%s", live.String())
	}
	return nil
}

// ExportProject writes a project's scored timestamps to outPath. The format
// follows the extension (.csv or .json).
func ExportProject(w io.Writer, projectArg, outPath string) error {
	proj, err := project.Load(config.ResolveProjectPath(projectArg))
	if err != nil {
		return err
	}

	doc := export.NewDocument(proj)
	if err := export.ExportFile(outPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d timestamps to %s\n", len(proj.Events), outPath)
	return nil
}

// ShowLog prints the saved score-log records for a project, or for a video
// file when video is non-empty.
func ShowLog(w io.Writer, projectArg, video string) error {
	scores, err := scorelog.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer scores.Close()

	var records []scorelog.Record
	if video != "" {
		records, err = scores.LoadForVideo(video)
	} else {
		records, err = scores.LoadForProject(projectArg)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No saved records")
		return nil
	}

	for _, r := range records {
		note := ""
		if r.Note != "" {
			note = "  " + r.Note
		}
		fmt.Fprintf(w, "%6d  %-12s %-16s %s%s\n", r.ID, r.Kind, r.Event(), r.CreatedAt.Format("2006-01-02 15:04:05"), note)
	}

	if video == "" {
		count, err := scores.Count(projectArg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%d records\n", count)
	}
	return nil
}

// DeleteLogRecord removes a single saved record by id.
func DeleteLogRecord(w io.Writer, id int64) error {
	scores, err := scorelog.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer scores.Close()

	if err := scores.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted record %d\n", id)
	return nil
}

// ClearLog removes every saved record for a project.
func ClearLog(w io.Writer, projectArg string) error {
	scores, err := scorelog.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer scores.Close()

	count, err := scores.Count(projectArg)
	if err != nil {
		return err
	}
	if err := scores.Clear(projectArg); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %d records for %s\n", count, projectArg)
	return nil
}

// StatsProject prints scoring statistics for a project.
func StatsProject(w io.Writer, projectArg string) error {
	proj, err := project.Load(config.ResolveProjectPath(projectArg))
	if err != nil {
		return err
	}

	summary := stats.Compute(proj.NewLog(), proj.FrameCount)
	fmt.Fprintf(w, "%s (%s)\n\n", proj.Name, proj.VideoFile)
	fmt.Fprint(w, summary.String())
	return nil
}
