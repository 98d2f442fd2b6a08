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

package catalog_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/catalog"
)

var calc = []apis.Member{
	{Key: "add_1", Name: "add", Descriptor: "(II)I", Static: true},
	{Key: "add_2", Name: "add", Descriptor: "(JJ)J", Static: true},
	{Key: "get", Name: "get", Descriptor: "()I"},
	{Key: "<init>", Name: apis.ConstructorName, Descriptor: "()V"},
}

var drivers = []struct {
	driver string
	file   string
}{
	{catalog.DriverCBOR, "catalog.cbor"},
	{catalog.DriverSQLite, "catalog.db"},
	{catalog.DriverYAML, "catalog.yaml"},
}

func TestRoundTrip(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", d.file)
			if d.driver == catalog.DriverSQLite {
				path = filepath.Join(t.TempDir(), d.file)
			}

			s, err := catalog.Open(d.driver, path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if _, ok, err := s.Load("example/Calc"); err != nil || ok {
				t.Fatalf("Load(empty store) = (%t,%v)", ok, err)
			}
			if err := s.Save("example/Calc", calc); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := s.Save("example/Empty", nil); err != nil {
				t.Fatalf("Save(empty): %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			// Reopen to prove the data went to disk.
			s, err = catalog.Open(d.driver, path)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer s.Close()

			got, ok, err := s.Load("example/Calc")
			if err != nil || !ok {
				t.Fatalf("Load = (%t,%v)", ok, err)
			}
			if !reflect.DeepEqual(got, calc) {
				t.Fatalf("Load = %+v, want %+v", got, calc)
			}
			empty, ok, err := s.Load("example/Empty")
			if err != nil || !ok || len(empty) != 0 {
				t.Fatalf("Load(empty class) = (%v,%t,%v)", empty, ok, err)
			}

			// Save replaces, it does not append.
			if err := s.Save("example/Calc", calc[:1]); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if got, _, _ := s.Load("example/Calc"); len(got) != 1 {
				t.Fatalf("Save appended: %d members", len(got))
			}

			classes, err := s.Classes()
			if err != nil {
				t.Fatalf("Classes: %v", err)
			}
			if want := []string{"example/Calc", "example/Empty"}; !reflect.DeepEqual(classes, want) {
				t.Fatalf("Classes() = %v, want %v", classes, want)
			}

			if _, _, err := s.Load(""); !errors.Is(err, catalog.ErrEmptyClass) {
				t.Fatalf("Load(\"\"): want ErrEmptyClass, got %v", err)
			}
			if err := s.Save("", calc); !errors.Is(err, catalog.ErrEmptyClass) {
				t.Fatalf("Save(\"\"): want ErrEmptyClass, got %v", err)
			}
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := catalog.Open("json", "x"); !errors.Is(err, catalog.ErrUnknownDriver) {
		t.Fatalf("want ErrUnknownDriver, got %v", err)
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("classes: [unterminated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := catalog.Open(catalog.DriverYAML, path); err == nil {
		t.Fatalf("corrupt catalog accepted")
	}
}

func TestCBOR_Canonical(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, order []string) []byte {
		t.Helper()
		path := filepath.Join(dir, name)
		s, err := catalog.OpenCBOR(path)
		if err != nil {
			t.Fatalf("OpenCBOR: %v", err)
		}
		for _, class := range order {
			if err := s.Save(class, calc); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		return data
	}
	a := write("a.cbor", []string{"x/A", "x/B", "x/C"})
	b := write("b.cbor", []string{"x/C", "x/A", "x/B"})
	if !bytes.Equal(a, b) {
		t.Fatalf("equal catalogs encoded differently")
	}
}

func TestFileStore_Closed(t *testing.T) {
	s, err := catalog.OpenYAML(filepath.Join(t.TempDir(), "c.yaml"))
	if err != nil {
		t.Fatalf("OpenYAML: %v", err)
	}
	_ = s.Close()
	if err := s.Save("a/B", calc); !errors.Is(err, catalog.ErrClosed) {
		t.Fatalf("Save after Close: want ErrClosed, got %v", err)
	}
}
