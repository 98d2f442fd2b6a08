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

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"dirpx.dev/jbridge/apis"
)

// codec encodes a whole catalog document.
type codec interface {
	Marshal(doc *document) ([]byte, error)
	Unmarshal(data []byte, doc *document) error
}

// FileStore keeps the whole catalog in memory and rewrites its file on
// every Save.
type FileStore struct {
	path  string
	codec codec

	mu     sync.Mutex
	doc    document
	closed bool
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)

// OpenCBOR opens a catalog stored as canonical CBOR.
func OpenCBOR(path string) (*FileStore, error) {
	return openFile(path, cborCodec{})
}

// OpenYAML opens a catalog stored as YAML.
func OpenYAML(path string) (*FileStore, error) {
	return openFile(path, yamlCodec{})
}

// openFile loads the document at path, or starts an empty one.
func openFile(path string, c codec) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		codec: c,
		doc:   document{Version: documentVersion, Classes: make(map[string][]apis.Member)},
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	var doc document
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog %s: %w", path, err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("catalog %s: unsupported version %d", path, doc.Version)
	}
	if doc.Classes != nil {
		s.doc.Classes = doc.Classes
	}
	return s, nil
}

// Load returns a copy of the members saved for class.
func (s *FileStore) Load(class string) ([]apis.Member, bool, error) {
	if class == "" {
		return nil, false, ErrEmptyClass
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	members, ok := s.doc.Classes[class]
	if !ok {
		return nil, false, nil
	}
	return append([]apis.Member{}, members...), true, nil
}

// Save replaces class and rewrites the file.
func (s *FileStore) Save(class string, members []apis.Member) error {
	if class == "" {
		return ErrEmptyClass
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	prev, had := s.doc.Classes[class]
	s.doc.Classes[class] = append([]apis.Member{}, members...)
	if err := s.flush(); err != nil {
		if had {
			s.doc.Classes[class] = prev
		} else {
			delete(s.doc.Classes, class)
		}
		return err
	}
	log.Debugf("saved %d members of %s to %s", len(members), class, s.path)
	return nil
}

// Classes lists the saved classes.
func (s *FileStore) Classes() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	names := make([]string, 0, len(s.doc.Classes))
	for name := range s.doc.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the store closed. The file is already up to date.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// flush writes the document through a temporary file and a rename.
// It must be called with mu held.
func (s *FileStore) flush() error {
	data, err := s.codec.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
