// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import (
	"sort"

	"github.com/walteh/opstep/pkg/operation"
	"github.com/walteh/opstep/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Settings carries the configuration a built-in may need
type Settings struct {
	// Replacements are the rules used by the replace built-in
	Replacements []text.ReplacementRule
	// FailMessage is reported by the fail built-in
	FailMessage string
}

// 🧩 Builtin is a named operation shipped with opstep
type Builtin struct {
	Name        string
	Description string
	// Build returns the operation options for the given settings
	Build func(settings Settings) (operation.Options, error)
}

// 📚 Registry holds built-in operations by name
type Registry struct {
	builtins map[string]Builtin
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{builtins: make(map[string]Builtin)}
}

// Default returns a registry holding every built-in
func Default() *Registry {
	r := NewRegistry()
	for _, b := range builtins() {
		if err := r.Register(b); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a built-in; names must be unique
func (r *Registry) Register(b Builtin) error {
	if b.Name == "" {
		return errors.Errorf("builtin name is required")
	}
	if b.Build == nil {
		return errors.Errorf("builtin %q has no build function", b.Name)
	}
	if _, ok := r.builtins[b.Name]; ok {
		return errors.Errorf("builtin %q already registered", b.Name)
	}
	r.builtins[b.Name] = b
	return nil
}

// Lookup finds a built-in by name
func (r *Registry) Lookup(name string) (Builtin, error) {
	b, ok := r.builtins[name]
	if !ok {
		return Builtin{}, errors.Errorf("unknown operation %q (available: %v)", name, r.Names())
	}
	return b, nil
}

// Names returns the registered names in order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered built-ins ordered by name
func (r *Registry) All() []Builtin {
	all := make([]Builtin, 0, len(r.builtins))
	for _, name := range r.Names() {
		all = append(all, r.builtins[name])
	}
	return all
}

// 🏭 NewOperation builds the named operation
func (r *Registry) NewOperation(name string, settings Settings, strict bool) (*operation.Operation, error) {
	b, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	opts, err := b.Build(settings)
	if err != nil {
		return nil, errors.Errorf("building operation %q: %w", name, err)
	}
	opts.Name = name
	opts.Strict = strict
	return operation.New(opts)
}
