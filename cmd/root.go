package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/TheFriendlyCoder/friendlyshell/core"
	"github.com/TheFriendlyCoder/friendlyshell/core/config"
)

var profilePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "friendlyshell",
	Short: "An embeddable interactive command shell",
	Long:  `Demonstration front end for the friendly shell engine.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "path to a YAML shell profile")
}

// applyProfile overlays the profile named on the command line, when any,
// onto a freshly constructed shell.
func applyProfile(s *core.Shell) error {
	if profilePath == "" {
		return nil
	}

	profile, err := config.LoadProfile(afero.NewOsFs(), profilePath)
	if err != nil {
		return err
	}

	if profile.Prompt != "" {
		s.Prompt = profile.Prompt
	}
	if profile.Banner != "" {
		s.Banner = profile.Banner
	}
	if profile.CommentDelimiter != "" {
		s.CommentDelimiter = profile.CommentDelimiter
	}
	if profile.HistoryFile != "" {
		s.HistoryFile = profile.HistoryFile
	}
	return nil
}
