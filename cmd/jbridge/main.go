/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command jbridge inspects managed classes and calls their members by key.
//
// Built with -tags jni it embeds a real JVM through JNI; otherwise it runs
// against the in-process demo runtime, which defines example/Calc.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"dirpx.dev/jbridge/config"
)

var log = commonlog.GetLogger("jbridge.cli")

type options struct {
	configPath string
	verbosity  int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "jbridge",
		Short:        "Inspect and call managed classes through a signature registry",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			commonlog.Configure(opts.verbosity, nil)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to "+config.FileName+" (searched upward from the working directory when empty)")
	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "log verbosity, repeat for more")

	root.AddCommand(newDescribeCommand(opts), newCallCommand(opts))
	return root
}
