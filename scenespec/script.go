package scenespec

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/isomap/iso"
	"github.com/milk9111/isomap/scene"
)

// RunScript runs a placement script once against sc. Scripts see
// map_width and map_height and may call:
//
//	place(layer, kind, image, x, y)
//	highlight(x, y)
//
// Both take map coordinates. A rejected placement stops the script.
func RunScript(name string, src []byte, sc *scene.Scene) error {
	if sc == nil {
		return fmt.Errorf("scenespec: script %s: nil scene", name)
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	size := sc.MapSize()
	_ = script.Add("map_width", size.Width)
	_ = script.Add("map_height", size.Height)
	_ = script.Add("place", &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, xok := tengo.ToFloat64(args[3])
		y, yok := tengo.ToFloat64(args[4])
		if !xok || !yok {
			return nil, fmt.Errorf("place: x and y must be numbers")
		}
		e := EntitySpec{
			Layer: objectAsString(args[0]),
			Kind:  objectAsString(args[1]),
			Image: objectAsString(args[2]),
			X:     x,
			Y:     y,
		}
		if err := Place(sc, e); err != nil {
			return nil, fmt.Errorf("place %s %s at %g,%g: %w", e.Layer, e.Kind, x, y, err)
		}
		return tengo.TrueValue, nil
	}})
	_ = script.Add("highlight", &tengo.UserFunction{Name: "highlight", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, xok := tengo.ToFloat64(args[0])
		y, yok := tengo.ToFloat64(args[1])
		if !xok || !yok {
			return tengo.FalseValue, nil
		}
		if !sc.SetHighlight(iso.Position{X: x, Y: y}, true) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}})

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("scenespec: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("scenespec: run %s: %w", name, err)
	}
	return nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
