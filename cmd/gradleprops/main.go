// Command gradleprops inspects and edits an Android platform's
// gradle.properties file from build scripts.
package main

import (
	"fmt"
	"os"

	"github.com/avbuild/gradleprops"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	platformDir string
	verbose     bool
)

// logNotifier routes editor notices to a logrus logger: verbose notices at
// debug level, drift advisories at info level.
type logNotifier struct {
	log *logrus.Logger
}

func (n *logNotifier) Verbosef(format string, args ...any) {
	n.log.Debugf(format, args...)
}

func (n *logNotifier) Infof(format string, args ...any) {
	n.log.Infof(format, args...)
}

func newEditor() *gradleprops.Editor {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	e := gradleprops.NewEditor(platformDir)
	e.Notifier = &logNotifier{log: log}

	return e
}

func main() {
	root := &cobra.Command{
		Use:          "gradleprops",
		Short:        "Inspect and edit an Android platform's gradle.properties",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&platformDir, "dir", "d", ".", "platform directory containing gradle.properties")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log internal operational detail")

	root.AddCommand(configureCmd(), getCmd(), setCmd(), unsetCmd(), listCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Apply the recommended defaults and report drift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newEditor().Configure()
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok, err := newEditor().Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("key %q not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)

			return nil
		},
	}
}

func setCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a property and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEditor()

			var err error
			if comment != "" {
				err = e.SetWithComment(args[0], args[1], comment)
			} else {
				err = e.Set(args[0], args[1])
			}
			if err != nil {
				return err
			}

			return e.Save()
		},
	}
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "comment to place above the entry")

	return cmd
}

func unsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a property and save the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEditor()
			if err := e.Unset(args[0]); err != nil {
				return err
			}

			return e.Save()
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [GLOB]",
		Short: "List properties, optionally filtered by a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEditor()

			var (
				keys []string
				err  error
			)
			if len(args) == 1 {
				keys, err = e.Matching(args[0])
			} else {
				keys, err = e.Keys()
			}
			if err != nil {
				return err
			}

			for _, k := range keys {
				v, _, err := e.Get(k)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, v)
			}

			return nil
		},
	}
}
