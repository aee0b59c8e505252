package core

import (
	"fmt"

	deepcopy "github.com/barkimedes/go-deepcopy"
	"github.com/huandu/go-clone"
	"github.com/mitchellh/copystructure"
)

// Cloner returns a structural copy of v sharing no mutable state with it.
type Cloner func(v any) (any, error)

// Names accepted by ClonerByName.
const (
	ClonerGoClone       = "go-clone"
	ClonerCopystructure = "copystructure"
	ClonerDeepcopy      = "deepcopy"
)

// CloneGo copies v with huandu/go-clone. It is the default backend.
func CloneGo(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return clone.Clone(v), nil
}

// CloneCopystructure copies v with mitchellh/copystructure.
func CloneCopystructure(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return copystructure.Copy(v)
}

// CloneDeepcopy copies v with barkimedes/go-deepcopy.
func CloneDeepcopy(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return deepcopy.Anything(v)
}

// ClonerByName maps a configuration name to a Cloner. The empty name selects
// the default backend.
func ClonerByName(name string) (Cloner, error) {
	switch name {
	case "", ClonerGoClone:
		return CloneGo, nil
	case ClonerCopystructure:
		return CloneCopystructure, nil
	case ClonerDeepcopy:
		return CloneDeepcopy, nil
	default:
		return nil, fmt.Errorf("unknown cloner %q", name)
	}
}

// CloneMap clones an object tree and asserts the result type.
func CloneMap(c Cloner, m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	v, err := c(m)
	if err != nil {
		return nil, err
	}
	out, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cloner returned %T, want map[string]any", v)
	}
	return out, nil
}
