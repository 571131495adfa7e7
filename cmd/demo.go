package cmd

import (
	"errors"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/juju/ratelimit"
	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/TheFriendlyCoder/friendlyshell/core"
	"github.com/TheFriendlyCoder/friendlyshell/core/config"
	"github.com/TheFriendlyCoder/friendlyshell/core/lineedit"
	"github.com/TheFriendlyCoder/friendlyshell/core/logger"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the demo shell on the local terminal.",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fs := afero.NewOsFs()
		historyFile, err := config.HistoryPath(fs, "demo")
		if err != nil {
			return err
		}
		logPath, err := config.LogPath(fs, "demo")
		if err != nil {
			return err
		}

		logFd, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		defer logFd.Close()

		log := &logger.Console{
			Out:    cmd.OutOrStdout(),
			Err:    cmd.ErrOrStderr(),
			Record: logger.NewJSONLinesRecorder(logFd),
			Color:  true,
		}

		ed, err := lineedit.NewReadline(lineedit.Options{})
		if err != nil {
			return err
		}
		defer ed.Close()

		shell := newDemoShell(ed, log, historyFile)
		if err := applyProfile(shell); err != nil {
			return err
		}
		return shell.Run(nil)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoRegions = []string{"eu-central", "us-east", "us-west"}

// newDemoShell builds the interactive demo: a handful of commands
// exercising arity binding, tab-completion, flag parsing and sub-shell
// nesting.
func newDemoShell(ed lineedit.Editor, log logger.Logger, historyFile string) *core.Shell {
	s := core.New(ed, log)
	s.Prompt = "demo> "
	s.Banner = "friendly shell demo. Type help to list commands."
	s.HistoryFile = historyFile

	settings := map[string]string{
		"region":  "us-east",
		"timeout": "30s",
	}

	s.MustRegister(&core.Command{
		Name:    "deploy",
		Summary: "Pretends to deploy the demo service to a region",
		Params:  []core.Param{{Name: "region"}, {Name: "notes", Optional: true}},
		Complete: func(_ []string, index int, _ int) []string {
			if index != 0 {
				return nil
			}
			return demoRegions
		},
		Run: func(s *core.Shell, args []string) error {
			s.Logger().Info("Deploying to %s...", args[0])
			if len(args) > 1 {
				s.Logger().Info("Release notes: %s", args[1])
			}
			s.Logger().Info("Done.")
			return nil
		},
	})

	s.MustRegister(&core.Command{
		Name:    "fetch",
		Summary: "Downloads a URL, rate limited to 2MB/s",
		Help:    "Flags: -o FILE writes the body to FILE, -q suppresses the summary.",
		Params:  []core.Param{{Name: "args"}},
		Run:     fetchCommand,
	})

	s.MustRegister(&core.Command{
		Name:    "settings",
		Summary: "Opens a nested shell for tuning demo settings",
		Run: func(parent *core.Shell, _ []string) error {
			return parent.RunSubshell(newSettingsShell(parent.Logger(), settings))
		},
	})

	return s
}

// newSettingsShell builds the nested settings editor. It runs with its own
// history so the parent's entries never leak into its recall buffer.
func newSettingsShell(log logger.Logger, settings map[string]string) *core.Shell {
	s := core.New(nil, log)
	s.Prompt = "demo/settings> "

	s.MustRegister(&core.Command{
		Name:    "show",
		Summary: "Lists the current settings",
		Run: func(s *core.Shell, _ []string) error {
			names := make([]string, 0, len(settings))
			for name := range settings {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				s.Logger().Info("%s = %s", name, settings[name])
			}
			return nil
		},
	})

	s.MustRegister(&core.Command{
		Name:    "set",
		Summary: "Updates one setting",
		Params:  []core.Param{{Name: "name"}, {Name: "value"}},
		Complete: func(_ []string, index int, _ int) []string {
			if index != 0 {
				return nil
			}
			names := make([]string, 0, len(settings))
			for name := range settings {
				names = append(names, name)
			}
			sort.Strings(names)
			return names
		},
		Run: func(s *core.Shell, args []string) error {
			settings[args[0]] = args[1]
			return nil
		},
	})

	return s
}

type fetchOptions struct {
	url    string
	output string
	quiet  bool
}

// parseFetchArgs splits the absorbed argument string back into tokens and
// runs them through a getopt flag set.
func parseFetchArgs(raw string) (*fetchOptions, error) {
	opts := getopt.New()
	output := opts.StringLong("output", 'o', "", "write the body to this file")
	quiet := opts.BoolLong("quiet", 'q', "suppress the download summary")

	argv := append([]string{"fetch"}, strings.Fields(raw)...)
	if err := opts.Getopt(argv, nil); err != nil {
		return nil, err
	}
	rest := opts.Args()
	if len(rest) != 1 {
		return nil, errors.New("fetch requires exactly one URL")
	}

	return &fetchOptions{url: rest[0], output: *output, quiet: *quiet}, nil
}

// Rate limit downloads to 2mbps.
const fetchBytesPerSecond = 2 * 1000 * 1000

func fetchCommand(s *core.Shell, args []string) error {
	opts, err := parseFetchArgs(args[0])
	if err != nil {
		s.Logger().Error("%v", err)
		return nil
	}

	rawURL := opts.url
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	response, err := http.Get(rawURL)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	var dst io.Writer = io.Discard
	if opts.output != "" {
		fd, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer fd.Close()
		dst = fd
	}

	bucket := ratelimit.NewBucketWithRate(fetchBytesPerSecond, fetchBytesPerSecond)
	n, err := io.Copy(dst, ratelimit.Reader(response.Body, bucket))
	if err != nil {
		return err
	}

	if !opts.quiet {
		s.Logger().Info("%s  %s", response.Status, rawURL)
		s.Logger().Info("%d bytes transferred", n)
		if opts.output != "" {
			s.Logger().Info("Saved to %s", opts.output)
		}
	}
	return nil
}
