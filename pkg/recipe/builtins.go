package recipe

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/blockforge/pkg/palette"
	"github.com/chazu/blockforge/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites recipe source before zygomys sees it:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     keywords need no global symbols that could clash with user variables.
//
//  2. Kebab-case to underscore: solid-fill -> solid_fill. zygomys reads a
//     hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments.
//
// String literals are left untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			j := skipQuoted(b, i, '"', true)
			result = append(result, b[i:j]...)
			i = j
			continue
		case b[i] == '`':
			j := skipQuoted(b, i, '`', false)
			result = append(result, b[i:j]...)
			i = j
			continue
		case b[i] == ';':
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			result = append(result, ':', '=')
			i += 2
			continue
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// skipQuoted returns the index just past the literal opened at b[start].
func skipQuoted(b []byte, start int, quote byte, escapes bool) int {
	i := start + 1
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			i += 2
			continue
		}
		i++
	}
	if i < len(b) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPrimitive is returned by box, cylinder and sphere. It becomes a
// scene node when defpart names it or another form consumes it.
type sexpPrimitive struct {
	data scene.PrimitiveData
	id   scene.NodeID // set once the primitive is in the scene
}

func (p *sexpPrimitive) SexpString(ps *zygo.PrintState) string {
	switch p.data.Kind {
	case scene.PrimBox:
		s := p.data.Size
		return fmt.Sprintf("(box %gx%gx%g)", s.X(), s.Y(), s.Z())
	case scene.PrimCylinder:
		return fmt.Sprintf("(cylinder r=%g h=%g)", p.data.Radius, p.data.Height)
	default:
		return fmt.Sprintf("(sphere r=%g)", p.data.Radius)
	}
}
func (p *sexpPrimitive) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a scene.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scene.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpMaterialRef is returned by material.
type sexpMaterialRef struct {
	name string
}

func (m *sexpMaterialRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material %q)", m.name)
}
func (m *sexpMaterialRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps an mgl64.Vec3.
type sexpVec3 struct {
	vec mgl64.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X(), v.vec.Y(), v.vec.Z())
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value; treat as a flag.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// float reads keyword key into *dst when present.
func (pa kwArgs) float(key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool accepts true/false, and treats a bare trailing keyword as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (mgl64.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toMaterialName accepts a material reference or a material name string.
func toMaterialName(s zygo.Sexp) (string, error) {
	switch v := s.(type) {
	case *sexpMaterialRef:
		return v.name, nil
	case *zygo.SexpStr:
		return v.S, nil
	}
	return "", fmt.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Scene building
// ---------------------------------------------------------------------------

// builder is the per-evaluation state shared by the builtins. Anonymous
// node IDs come from its counter, so identical sources produce identical
// scenes.
type builder struct {
	r    *Recipe
	anon int
}

func newBuilder(r *Recipe) *builder {
	return &builder{r: r}
}

func (b *builder) nextID(prefix string) scene.NodeID {
	b.anon++
	return scene.NewNodeID(fmt.Sprintf("%s/_anon_%d", prefix, b.anon))
}

// ref resolves a node reference, adding anonymous primitives to the scene
// on first use.
func (b *builder) ref(s zygo.Sexp) (scene.NodeID, error) {
	switch v := s.(type) {
	case *sexpNodeRef:
		return v.id, nil
	case *sexpPrimitive:
		if v.id.IsZero() {
			v.id = b.nextID(v.data.Kind.String())
			b.r.Scene.AddNode(&scene.Node{ID: v.id, Kind: scene.NodePrimitive, Data: v.data})
		}
		return v.id, nil
	}
	return scene.NodeID{}, fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

func (b *builder) refs(form string, args []zygo.Sexp) ([]scene.NodeID, error) {
	ids := make([]scene.NodeID, 0, len(args))
	for i, a := range args {
		id, err := b.ref(a)
		if err != nil {
			return nil, fmt.Errorf("%s: child %d: %w", form, i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// primitive parses the shared :material keyword and the shape's
// dimensions from positional or keyword arguments.
func (b *builder) primitive(form string, kind scene.PrimitiveKind, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	d := scene.PrimitiveData{Kind: kind}

	nums := make([]float64, 0, len(pa.positional))
	for i, p := range pa.positional {
		f, err := toFloat64(p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", form, i+1, err)
		}
		nums = append(nums, f)
	}

	var err error
	switch kind {
	case scene.PrimBox:
		if len(nums) == 3 {
			d.Size = mgl64.Vec3{nums[0], nums[1], nums[2]}
		} else if len(nums) != 0 {
			return zygo.SexpNull, fmt.Errorf("box takes 3 dimensions, got %d", len(nums))
		}
		if v, ok := pa.kw["size"]; ok {
			if d.Size, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
			}
		}
		for i, key := range []string{"x", "y", "z"} {
			if err := pa.float(key, &d.Size[i]); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %w", err)
			}
		}
	case scene.PrimCylinder:
		if len(nums) == 2 {
			d.Radius, d.Height = nums[0], nums[1]
		} else if len(nums) != 0 {
			return zygo.SexpNull, fmt.Errorf("cylinder takes radius and height, got %d numbers", len(nums))
		}
		if err := pa.float("radius", &d.Radius); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if err := pa.float("height", &d.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
	case scene.PrimSphere:
		if len(nums) == 1 {
			d.Radius = nums[0]
		} else if len(nums) != 0 {
			return zygo.SexpNull, fmt.Errorf("sphere takes a radius, got %d numbers", len(nums))
		}
		if err := pa.float("radius", &d.Radius); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
	}

	if v, ok := pa.kw["material"]; ok {
		if d.Material, err = toMaterialName(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: material: %w", form, err)
		}
	}
	return &sexpPrimitive{data: d}, nil
}

// boolean builds a union, difference or intersection node.
func (b *builder) boolean(form string, op scene.BooleanOp, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) == 0 {
		return zygo.SexpNull, fmt.Errorf("%s requires at least one solid", form)
	}
	children, err := b.refs(form, pa.positional)
	if err != nil {
		return zygo.SexpNull, err
	}
	bd := scene.BooleanData{Op: op}
	if v, ok := pa.kw["material"]; ok {
		if bd.Material, err = toMaterialName(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: material: %w", form, err)
		}
	}
	id := b.nextID(form)
	b.r.Scene.AddNode(&scene.Node{ID: id, Kind: scene.NodeBoolean, Children: children, Data: bd})
	return &sexpNodeRef{id: id}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the recipe builtins into a zygomys
// environment. They fill in the builder's recipe during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {
	r := b.r

	// -----------------------------------------------------------------------
	// (recipe "crate")
	// -----------------------------------------------------------------------
	env.AddFunction("recipe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("recipe requires a name")
		}
		s, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("recipe: name: %w", err)
		}
		r.Name = s
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (resolution 64)
	// -----------------------------------------------------------------------
	env.AddFunction("resolution", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("resolution requires one integer")
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resolution: %w", err)
		}
		if n <= 0 {
			return zygo.SexpNull, fmt.Errorf("resolution must be positive, got %d", n)
		}
		r.Resolution = n
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (solid-fill true) and (center false)
	// -----------------------------------------------------------------------
	flag := func(form string, dst **bool) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			v := true
			if len(args) > 0 {
				var err error
				if v, err = toBool(args[0]); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", form, err)
				}
			}
			*dst = &v
			return zygo.SexpNull, nil
		}
	}
	env.AddFunction("solid_fill", flag("solid-fill", &r.SolidFill))
	env.AddFunction("center", flag("center", &r.Center))

	// -----------------------------------------------------------------------
	// (block "Light Blue Stained Glass" "#3a6fa8" "minecraft:light_blue_stained_glass" :transparent true)
	// -----------------------------------------------------------------------
	env.AddFunction("block", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("block requires a name, a hex color and a block id")
		}
		var fields [3]string
		for i, p := range pa.positional {
			s, err := toString(p)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: argument %d: %w", i+1, err)
			}
			fields[i] = s
		}
		if _, err := palette.ParseHex(fields[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("block %q: %w", fields[0], err)
		}
		e := palette.Entry{Name: fields[0], Hex: fields[1], BlockID: fields[2]}
		if v, ok := pa.kw["transparent"]; ok {
			t, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("block: transparent: %w", err)
			}
			e.Transparent = t
		}
		r.Blocks = append(r.Blocks, e)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (override "planks" "minecraft:oak_planks")
	// -----------------------------------------------------------------------
	env.AddFunction("override", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("override requires a material and a block id")
		}
		mat, err := toMaterialName(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("override: material: %w", err)
		}
		id, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("override: block id: %w", err)
		}
		r.Overrides[mat] = id
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (material "planks" :color "#9c7f4e" :opacity 1 :texture "planks.png")
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("material requires a name")
		}
		matName, err := toString(pa.positional[0])
		if err != nil || matName == "" {
			return zygo.SexpNull, fmt.Errorf("material: name: expected a non-empty string")
		}
		if _, dup := r.Materials[matName]; dup {
			return zygo.SexpNull, fmt.Errorf("material %q already defined", matName)
		}

		def := MaterialDef{Name: matName, Opacity: 1}
		if v, ok := pa.kw["color"]; ok {
			hex, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material %q: color: %w", matName, err)
			}
			if def.Color, err = palette.ParseHex(hex); err != nil {
				return zygo.SexpNull, fmt.Errorf("material %q: %w", matName, err)
			}
		} else {
			def.Color = defaultMaterialColor
		}
		if err := pa.float("opacity", &def.Opacity); err != nil {
			return zygo.SexpNull, fmt.Errorf("material %q: %w", matName, err)
		}
		if def.Opacity < 0 || def.Opacity > 1 {
			return zygo.SexpNull, fmt.Errorf("material %q: opacity %g outside 0..1", matName, def.Opacity)
		}
		if v, ok := pa.kw["texture"]; ok {
			if def.Texture, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("material %q: texture: %w", matName, err)
			}
		}
		r.Materials[matName] = def
		return &sexpMaterialRef{name: matName}, nil
	})

	// -----------------------------------------------------------------------
	// (box 10 8 10 :material planks)  (box :size (vec3 10 8 10))
	// (cylinder 2 10)                 (cylinder :radius 2 :height 10)
	// (sphere 4)                      (sphere :radius 4)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.primitive("box", scene.PrimBox, args)
	})
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.primitive("cylinder", scene.PrimCylinder, args)
	})
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.primitive("sphere", scene.PrimSphere, args)
	})

	// -----------------------------------------------------------------------
	// (defpart "lid" (box 10 1 10))
	// -----------------------------------------------------------------------
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defpart requires a name and a body expression")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}
		if r.Scene.Lookup(partName) != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: part %q already defined", partName)
		}

		id := scene.NewNodeID("defpart/" + partName)
		var node *scene.Node
		switch body := args[1].(type) {
		case *sexpPrimitive:
			node = &scene.Node{ID: id, Kind: scene.NodePrimitive, Name: partName, Data: body.data}
		case *sexpNodeRef:
			node = &scene.Node{ID: id, Kind: scene.NodeGroup, Name: partName,
				Children: []scene.NodeID{body.id}, Data: scene.GroupData{}}
		default:
			return zygo.SexpNull, fmt.Errorf("defpart: expected a solid, got %T", args[1])
		}
		r.Scene.AddNode(node)
		return &sexpNodeRef{id: id, name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (part "lid")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		n := r.Scene.Lookup(partName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}
		return &sexpNodeRef{id: n.ID, name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v mgl64.Vec3
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (place (part "lid") :at (vec3 0 8 0) :rotate (vec3 0 90 0))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a part reference as first argument")
		}
		children, err := b.refs("place", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}

		td := scene.TransformData{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			td.Translation = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			td.Rotation = &vec
		}

		id := b.nextID("place")
		r.Scene.AddNode(&scene.Node{ID: id, Kind: scene.NodeTransform, Children: children, Data: td})
		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (group a b ...) and (assembly "name" a b ...)
	// -----------------------------------------------------------------------
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		children, err := b.refs("group", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		id := b.nextID("group")
		r.Scene.AddNode(&scene.Node{ID: id, Kind: scene.NodeGroup, Children: children, Data: scene.GroupData{}})
		return &sexpNodeRef{id: id}, nil
	})

	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("assembly requires a name argument")
		}
		asmName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: name: %w", err)
		}
		children, err := b.refs("assembly", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		id := scene.NewNodeID("assembly/" + asmName)
		r.Scene.AddNode(&scene.Node{
			ID:       id,
			Kind:     scene.NodeGroup,
			Name:     asmName,
			Children: children,
			Data:     scene.GroupData{Description: asmName},
		})
		r.Scene.AddRoot(id)
		return &sexpNodeRef{id: id, name: asmName}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b :material m)  (difference a b)  (intersection a b)
	// -----------------------------------------------------------------------
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.boolean("union", scene.OpUnion, args)
	})
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.boolean("difference", scene.OpDifference, args)
	})
	env.AddFunction("intersection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.boolean("intersection", scene.OpIntersection, args)
	})
}
