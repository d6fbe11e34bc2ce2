// Command envkit is the diagnostic driver: it probes the host's
// development toolchain, classifies a project's framework, and
// captures/reproduces environment snapshots across machines.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"

	"github.com/envkit-dev/envkit"
	"github.com/envkit-dev/envkit/probe"
	mdreport "github.com/envkit-dev/envkit/report"
	"github.com/envkit-dev/envkit/reproduce"
	"github.com/envkit-dev/envkit/snapshot"
	"github.com/envkit-dev/envkit/taxonomy"
	"github.com/envkit-dev/envkit/toolcache"
)

var (
	version = "dev"
	commit  = "none"
)

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func main() {
	var (
		categories     stringList
		tools          stringList
		noSystemInfo   = flag.Bool("no-system-info", false, "Omit the base system report")
		format         = flag.String("format", "json", "Output format: json or yaml")
		output         = flag.String("output", "", "Write to a file instead of stdout")
		listCategories = flag.Bool("list-categories", false, "List every known category and exit")
		listTools      = flag.Bool("list-tools", false, "List every known tool and exit")
		useCache       = flag.Bool("cache", true, "Consult the on-disk toolcache before re-probing")
		configFile     = flag.String("config", "", "Path to a specific config file")
		showVersion    = flag.Bool("version", false, "Show version information")
		debug          = flag.Bool("debug", false, "Enable debug output to stderr")
	)
	flag.Var(&categories, "categories", "Comma-separated category prefixes to restrict probing to")
	flag.Var(&tools, "tools", "Comma-separated tool names to restrict probing to")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "envkit - deterministic development-environment toolkit\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s classify <path>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s snapshot [--project <path>] [--output <file>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s reproduce <snapshot-file> [--target <path>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Default behavior (no command): diagnose the host and print a ToolTree report.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0 - successful enumeration (even if individual probes failed)\n")
		fmt.Fprintf(os.Stderr, "  1 - I/O failure writing the output file\n")
		fmt.Fprintf(os.Stderr, "  2 - invalid arguments\n")
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("envkit version %s (%s)\n", version, commit)
		os.Exit(0)
	}

	loader, err := envkit.NewConfigLoader()
	var cfg *envkit.AppConfig
	if err != nil {
		if *debug {
			fmt.Fprintf(os.Stderr, "envkit: config loader unavailable: %v\n", err)
		}
		cfg = envkit.NewAppConfig()
	} else if *configFile != "" {
		cfg, err = loader.LoadConfigWithPaths([]string{*configFile})
	} else {
		cfg, err = loader.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "envkit: load configuration: %v\n", err)
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "classify":
			runClassify(cfg, args[1:])
			return
		case "snapshot":
			runSnapshot(cfg, args[1:])
			return
		case "reproduce":
			runReproduce(cfg, args[1:])
			return
		default:
			fmt.Fprintf(os.Stderr, "envkit: unknown command %q\n", args[0])
			flag.Usage()
			os.Exit(2)
		}
	}

	tk := envkit.NewWithConfig(cfg)
	cache := attachCache(tk, cfg, *useCache, *debug)

	registry := taxonomy.NewRegistry()
	if *listCategories {
		for _, c := range registry.AllCategories() {
			fmt.Printf("%s\t%s\n", c.Path, c.Description)
		}
		os.Exit(0)
	}
	if *listTools {
		specs := registry.CommandsFor(taxonomy.CurrentPlatform())
		sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
		for _, s := range specs {
			fmt.Printf("%s\t%s\n", s.Category, s.Name)
		}
		os.Exit(0)
	}

	if *format != "json" && *format != "yaml" {
		fmt.Fprintf(os.Stderr, "envkit: invalid --format %q (want json or yaml)\n", *format)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tree, probeErr := tk.Diagnose(ctx, envkit.DiagnoseOptions{
		Categories: categories,
		Tools:      tools,
		UseCache:   *useCache,
	})
	if probeErr != nil && *debug {
		fmt.Fprintf(os.Stderr, "envkit: diagnose completed with errors: %v\n", probeErr)
	}
	if cache != nil {
		if err := cache.Save(); err != nil && *debug {
			fmt.Fprintf(os.Stderr, "envkit: save toolcache: %v\n", err)
		}
	}

	diagReport := map[string]any{
		"tools": tree.Snapshot(),
		"_metadata": map[string]any{
			"platform":        string(taxonomy.CurrentPlatform()),
			"generated_at":    time.Now().UTC().Format(time.RFC3339),
			"tool_count":      len(registry.AllTools()),
			"categories":      categories,
			"requested_tools": tools,
		},
	}
	if !*noSystemInfo {
		diagReport["system"] = systemInfo()
	}

	if err := writeReport(diagReport, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "envkit: write output: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func attachCache(tk *envkit.Toolkit, cfg *envkit.AppConfig, useCache, debug bool) *toolcache.Cache {
	if !useCache {
		return nil
	}
	if cfg.Cache != nil && cfg.Cache.Enabled != nil && !*cfg.Cache.Enabled {
		return nil
	}
	ttl := toolcache.DefaultTTL
	if cfg.Cache != nil && cfg.Cache.TTL != nil {
		ttl = cfg.Cache.TTL.Duration
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	cache, err := toolcache.Open(toolcache.DefaultPath(wd), ttl)
	if err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "envkit: open toolcache: %v\n", err)
		}
		return nil
	}
	tk.WithCache(cache)
	return cache
}

func systemInfo() probe.SystemInfo {
	return probe.CollectSystemInfo()
}

func writeReport(report map[string]any, format, output string) error {
	var data []byte
	var err error
	switch format {
	case "yaml":
		data, err = yaml.Marshal(report)
	default:
		data, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(output, append(data, '\n'), 0o644)
}

func runClassify(cfg *envkit.AppConfig, args []string) {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	output := fs.String("output", "", "Write to a file instead of stdout")
	_ = fs.Parse(args)

	path := "."
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	tk := envkit.NewWithConfig(cfg)
	analysis, err := tk.Classify(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envkit: classify: %v\n", err)
		os.Exit(2)
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "envkit: encode analysis: %v\n", err)
		os.Exit(1)
	}
	if *output == "" {
		fmt.Println(string(data))
		os.Exit(0)
	}
	if err := os.WriteFile(*output, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "envkit: write output: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runSnapshot(cfg *envkit.AppConfig, args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	var categories, tools stringList
	project := fs.String("project", ".", "Project path to capture lock/config files from")
	noSystem := fs.Bool("no-system-info", false, "Omit the base system report")
	output := fs.String("output", "", "Write the snapshot to a file instead of stdout")
	format := fs.String("format", "json", "Output format: json or yaml")
	guide := fs.String("guide", "", "Also write a Markdown reproduction guide to this path")
	fs.Var(&categories, "categories", "Comma-separated category prefixes")
	fs.Var(&tools, "tools", "Comma-separated tool names")
	_ = fs.Parse(args)

	if *format != "json" && *format != "yaml" {
		fmt.Fprintf(os.Stderr, "envkit: invalid --format %q\n", *format)
		os.Exit(2)
	}

	tk := envkit.NewWithConfig(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	snap, err := tk.Snapshot(ctx, envkit.SnapshotOptions{
		ProjectPath:       *project,
		IncludeSystemInfo: !*noSystem,
		IncludeConfigs:    true,
		Categories:        categories,
		Tools:             tools,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "envkit: snapshot: %v\n", err)
		os.Exit(2)
	}

	fileFormat := snapshot.FormatJSON
	if *format == "yaml" {
		fileFormat = snapshot.FormatYAML
	}

	if *output == "" {
		var data []byte
		var encErr error
		if fileFormat == snapshot.FormatYAML {
			data, encErr = yaml.Marshal(snap)
		} else {
			data, encErr = json.MarshalIndent(snap, "", "  ")
		}
		if encErr != nil {
			fmt.Fprintf(os.Stderr, "envkit: encode snapshot: %v\n", encErr)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else if err := snapshot.Save(snap, *output, fileFormat); err != nil {
		fmt.Fprintf(os.Stderr, "envkit: write snapshot: %v\n", err)
		os.Exit(1)
	}

	if *guide != "" {
		if err := writeSnapshotGuide(snap, *guide); err != nil {
			fmt.Fprintf(os.Stderr, "envkit: write guide: %v\n", err)
			os.Exit(1)
		}
	}
	os.Exit(0)
}

func runReproduce(cfg *envkit.AppConfig, args []string) {
	fs := flag.NewFlagSet("reproduce", flag.ExitOnError)
	target := fs.String("target", ".", "Directory to restore lock/config files into")
	guide := fs.String("guide", "", "Write a Markdown reproduction guide to this path")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "envkit: reproduce requires a snapshot file argument")
		os.Exit(2)
	}

	snap, err := snapshot.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "envkit: load snapshot: %v\n", err)
		os.Exit(2)
	}

	tk := envkit.NewWithConfig(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result := tk.Reproduce(ctx, snap, envkit.ReproduceOptions{TargetPath: *target})

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "envkit: encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))

	if *guide != "" {
		r := reproduce.NewReproducer(reproduce.Options{TargetPath: *target})
		f, err := os.Create(*guide)
		if err != nil {
			fmt.Fprintf(os.Stderr, "envkit: create guide: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := r.WriteGuide(f, result); err != nil {
			fmt.Fprintf(os.Stderr, "envkit: write guide: %v\n", err)
			os.Exit(1)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
	os.Exit(0)
}

func writeSnapshotGuide(snap *snapshot.EnvironmentSnapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	view := mdreport.SnapshotView{
		SnapshotID:   snap.SnapshotID,
		Platform:     string(snap.Platform),
		Architecture: snap.Architecture,
		Timestamp:    snap.Timestamp,
		ToolVersions: snap.ToolVersions,
		ProjectPath:  snap.ProjectPath,
	}
	for name := range snap.LockFiles {
		view.LockFiles = append(view.LockFiles, name)
	}
	for name := range snap.ConfigFiles {
		view.ConfigFiles = append(view.ConfigFiles, name)
	}
	sort.Strings(view.LockFiles)
	sort.Strings(view.ConfigFiles)
	return mdreport.WriteSnapshotGuide(f, view)
}
