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

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/jbridge/apis"
)

// memberRow is one line of describe output.
type memberRow struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	Descriptor string `yaml:"descriptor"`
	Static     bool   `yaml:"static"`
	Returns    string `yaml:"returns"`
	State      string `yaml:"state"`
}

func newDescribeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <class>",
		Short: "List the members registered for a class",
		Long: "Builds the registry of a class from the configuration file, the\n" +
			"catalog, or the runtime's reflection, and lists its members.\n" +
			"Output is a table on a terminal and YAML otherwise.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			reg, err := s.registry(args[0])
			if reg == nil {
				return err
			}
			if err != nil {
				log.Warningf("%s: %v", args[0], err)
			}

			rows := rowsOf(reg.Entries())
			out := cmd.OutOrStdout()
			if isTerminal(out) {
				return writeTable(out, rows)
			}
			return writeYAML(out, rows)
		},
	}
}

func rowsOf(sigs []apis.Signature) []memberRow {
	rows := make([]memberRow, len(sigs))
	for i, s := range sigs {
		rows[i] = memberRow{
			Key:        s.Key,
			Name:       s.Name,
			Descriptor: s.Descriptor,
			Static:     s.Static,
			Returns:    s.Tag.String(),
			State:      s.State.String(),
		}
	}
	return rows
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeTable(w io.Writer, rows []memberRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tDESCRIPTOR\tSTATIC\tRETURNS\tSTATE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\t%s\n", r.Key, r.Name, r.Descriptor, r.Static, r.Returns, r.State)
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, rows []memberRow) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}
