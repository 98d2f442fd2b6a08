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

	"github.com/spf13/cobra"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/dispatch"
)

func newCallCommand(opts *options) *cobra.Command {
	var (
		ctor     string
		ctorArgs []string
	)

	cmd := &cobra.Command{
		Use:   "call <class> <key> [TYPE:VALUE]...",
		Short: "Invoke a member by key",
		Long: "Invokes the member registered under key. Arguments are typed with\n" +
			"their descriptor code, e.g. I:2 J:10 D:1.5 Z:true C:x.\n" +
			"Instance members need --new to construct a receiver first.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args[2:])
			if err != nil {
				return err
			}
			cvalues, err := parseArgs(ctorArgs)
			if err != nil {
				return err
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			reg, err := s.registry(args[0])
			if err != nil {
				return err
			}
			if ctor != "" {
				if _, err := reg.Construct(ctor, cvalues...); err != nil {
					return err
				}
				defer reg.Release()
			}

			out, err := invoke(s.vm.Dispatcher(reg), args[1], values)
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ctor, "new", "", "constructor key used to create the receiver")
	cmd.Flags().StringSliceVar(&ctorArgs, "new-arg", nil, "constructor argument as TYPE:VALUE (repeatable)")
	return cmd
}

// invoke routes key to the typed call matching its return shape.
func invoke(e *dispatch.Engine, key string, args []apis.Value) (string, error) {
	sig, err := e.Registry().Lookup(key)
	if err != nil {
		return "", err
	}
	switch sig.Tag {
	case apis.TagBoolean:
		return call[apis.Boolean](e, key, args)
	case apis.TagByte:
		return call[apis.Byte](e, key, args)
	case apis.TagChar:
		return call[apis.Char](e, key, args)
	case apis.TagShort:
		return call[apis.Short](e, key, args)
	case apis.TagInt:
		return call[apis.Int](e, key, args)
	case apis.TagLong:
		return call[apis.Long](e, key, args)
	case apis.TagFloat:
		return call[apis.Float](e, key, args)
	case apis.TagDouble:
		return call[apis.Double](e, key, args)
	case apis.TagObject:
		return call[apis.ObjectRef](e, key, args)
	case apis.TagVoid:
		return "", e.CallVoid(key, args...)
	}
	return "", fmt.Errorf("%s: unsupported return shape %s", key, sig.Tag)
}

func call[T apis.Shape](e *dispatch.Engine, key string, args []apis.Value) (string, error) {
	v, err := dispatch.Call[T](e, key, args...)
	if err != nil {
		return "", err
	}
	return formatValue(v), nil
}
