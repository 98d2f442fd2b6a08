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
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("catalog: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// cborCodec stores the catalog as canonical CBOR, so equal catalogs are
// byte-identical files.
type cborCodec struct{}

func (cborCodec) Marshal(doc *document) ([]byte, error) {
	return cborEncMode.Marshal(doc)
}

func (cborCodec) Unmarshal(data []byte, doc *document) error {
	return cbor.Unmarshal(data, doc)
}
