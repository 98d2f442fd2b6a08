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

package builder_test

import (
	"errors"
	"path/filepath"
	"testing"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/builder"
	"dirpx.dev/jbridge/catalog"
	"dirpx.dev/jbridge/registry"
	"dirpx.dev/jbridge/runtime/vmtest"
	"dirpx.dev/jbridge/strategy"
)

func TestBuild_ManualMembers(t *testing.T) {
	rt := vmtest.New(vmtest.Calc())
	b := builder.New(rt)

	reg, err := b.Build(apis.ClassSpec{
		Name: vmtest.CalcName,
		Members: []apis.Member{
			{Key: "add", Name: "add", Descriptor: "(II)I", Static: true},
			{Key: "ctor", Name: apis.ConstructorName, Descriptor: "(I)V"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reg.Bound() || reg.Count() != 2 {
		t.Fatalf("bound=%t count=%d, want true/2", reg.Bound(), reg.Count())
	}
	if sig, _ := reg.Lookup("ctor"); sig.State != apis.Resolved {
		t.Fatalf("ctor unresolved")
	}
}

func TestBuild_Errors(t *testing.T) {
	rt := vmtest.New(vmtest.Calc())
	if _, err := builder.New(rt).Build(apis.ClassSpec{}, nil); !errors.Is(err, builder.ErrEmptyClass) {
		t.Fatalf("want ErrEmptyClass, got %v", err)
	}
	if _, err := builder.New(nil).Build(apis.ClassSpec{Name: "a/B"}, nil); !errors.Is(err, apis.ErrNilRuntime) {
		t.Fatalf("want ErrNilRuntime, got %v", err)
	}

	reg, err := builder.New(rt).Build(apis.ClassSpec{Name: "no/such/Class"}, nil)
	if !errors.Is(err, registry.ErrClassNotFound) {
		t.Fatalf("want ErrClassNotFound, got %v", err)
	}
	if reg == nil || reg.Bound() {
		t.Fatalf("a failed bind returns the unbound registry")
	}

	_, err = builder.New(rt).Build(apis.ClassSpec{
		Name:    vmtest.CalcName,
		Members: []apis.Member{{Key: "bad", Name: "bad", Descriptor: "(I"}},
	}, nil)
	if err == nil {
		t.Fatalf("malformed member accepted")
	}
}

func TestBuild_MigratesPrevious(t *testing.T) {
	rt := vmtest.New(vmtest.Calc())
	prev := registry.New(rt)
	_ = prev.RegisterAs("plus", "add", "(II)I", true)

	reg, err := builder.New(rt).Build(apis.ClassSpec{
		Name:    vmtest.CalcName,
		Members: []apis.Member{{Key: "get", Name: "get", Descriptor: "()I"}},
	}, prev)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reg.ID() == prev.ID() {
		t.Fatalf("Build must return a new registry")
	}
	if sig, err := reg.Lookup("plus"); err != nil || sig.State != apis.Resolved {
		t.Fatalf("migrated entry = (%+v,%v)", sig, err)
	}
	if prev.Bound() {
		t.Fatalf("Build bound the previous registry")
	}
}

func TestBuild_IntrospectThroughCatalog(t *testing.T) {
	rt := vmtest.New(vmtest.Calc())
	store, err := catalog.Open(catalog.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	b := builder.New(rt, builder.WithStore(store), builder.WithKeyStrategy(strategy.NewOrdinalStrategy()))
	spec := apis.ClassSpec{Name: vmtest.CalcName, Introspect: true}

	reg, err := b.Build(spec, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reg.Count() != len(vmtest.Calc().Members) {
		t.Fatalf("Count() = %d, want %d", reg.Count(), len(vmtest.Calc().Members))
	}
	if rt.Calls("DeclaredMembers") != 1 {
		t.Fatalf("DeclaredMembers called %d times, want 1", rt.Calls("DeclaredMembers"))
	}
	saved, ok, err := store.Load(vmtest.CalcName)
	if err != nil || !ok || len(saved) != reg.Count() {
		t.Fatalf("catalog = (%d,%t,%v)", len(saved), ok, err)
	}

	// The second build is served by the catalog.
	reg2, err := b.Build(spec, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rt.Calls("DeclaredMembers") != 1 {
		t.Fatalf("catalog hit still reflected")
	}
	if reg2.Count() != reg.Count() {
		t.Fatalf("Count() = %d, want %d", reg2.Count(), reg.Count())
	}
}

func TestBuild_IntrospectAndExtraMembers(t *testing.T) {
	rt := vmtest.New(vmtest.Calc())
	reg, err := builder.New(rt).Build(apis.ClassSpec{
		Name:       vmtest.CalcName,
		Introspect: true,
		// An alias for an introspected member under a friendlier key.
		Members: []apis.Member{{Key: "addInts", Name: "add", Descriptor: "(II)I", Static: true}},
	}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := reg.Lookup("addInts"); err != nil {
		t.Fatalf("Lookup(addInts): %v", err)
	}
	if _, err := reg.Lookup("add_1"); err != nil {
		t.Fatalf("Lookup(add_1): %v", err)
	}
}

func TestBuild_CatalogRekeyedByStrategy(t *testing.T) {
	rt := vmtest.New(vmtest.Calc())
	store, err := catalog.Open(catalog.DriverYAML, filepath.Join(t.TempDir(), "catalog.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	spec := apis.ClassSpec{Name: vmtest.CalcName, Introspect: true}
	if _, err := builder.New(rt, builder.WithStore(store)).Build(spec, nil); err != nil {
		t.Fatalf("Build(ordinal): %v", err)
	}

	reg, err := builder.New(rt,
		builder.WithStore(store),
		builder.WithKeyStrategy(strategy.NewDescriptorStrategy()),
	).Build(spec, nil)
	if err != nil {
		t.Fatalf("Build(descriptor): %v", err)
	}
	if rt.Calls("DeclaredMembers") != 1 {
		t.Fatalf("DeclaredMembers called %d times, want 1", rt.Calls("DeclaredMembers"))
	}

	// (DD)D < (II)I < (JJ)J, whatever order the catalog holds them in.
	want := map[string]string{"add_1": "(DD)D", "add_2": "(II)I", "add_3": "(JJ)J"}
	for key, desc := range want {
		if d, err := reg.Descriptor(key); err != nil || d != desc {
			t.Fatalf("Descriptor(%s) = %q, %v; want %q", key, d, err, desc)
		}
	}
}
