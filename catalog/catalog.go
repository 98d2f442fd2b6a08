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

// Package catalog persists introspected member lists per class, so later
// runs can register a class without going through reflection.
//
// Three drivers are available: a canonical-CBOR file ("cbor"), a SQLite
// database ("sqlite") and a YAML file ("yaml") meant to be edited by hand.
package catalog

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
)

// Driver names accepted by Open.
const (
	DriverCBOR   = "cbor"
	DriverSQLite = "sqlite"
	DriverYAML   = "yaml"
)

var (
	// ErrUnknownDriver is returned by Open for an unsupported driver.
	ErrUnknownDriver = errors.New("jbridge(catalog): unknown catalog driver")
	// ErrEmptyClass is returned when a class name is empty.
	ErrEmptyClass = errors.New("jbridge(catalog): empty class name")
	// ErrClosed is returned by a store after Close.
	ErrClosed = errors.New("jbridge(catalog): store is closed")
)

var log = commonlog.GetLogger("jbridge.catalog")

// Store keeps member lists keyed by class name.
type Store interface {
	// Load returns the members saved for class, in saved order.
	// The bool is false when nothing was saved for class.
	Load(class string) ([]apis.Member, bool, error)
	// Save replaces the members of class.
	Save(class string, members []apis.Member) error
	// Classes lists the saved classes, sorted.
	Classes() ([]string, error)
	// Close releases the store.
	Close() error
}

// Open opens (creating when missing) the store at path with driver.
func Open(driver, path string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case DriverCBOR:
		s, err = OpenCBOR(path)
	case DriverYAML:
		s, err = OpenYAML(path)
	case DriverSQLite:
		s, err = OpenSQL(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// document is the on-disk layout of the file drivers.
type document struct {
	Version int                      `cbor:"1,keyasint" yaml:"version"`
	Classes map[string][]apis.Member `cbor:"2,keyasint" yaml:"classes"`
}

// documentVersion is bumped on incompatible layout changes.
const documentVersion = 1
