package driver

import (
	"fmt"
	"reflect"

	"github.com/arloliu/bitcode/internal/columnar"
)

// unsupportedTypeError reports a Go type the driver cannot build a column
// codec for (channels, funcs, interfaces, complex numbers, uintptr, and
// unsafe pointers have no corresponding semantic type in the data model).
type unsupportedTypeError struct {
	Type reflect.Type
}

func (e *unsupportedTypeError) Error() string {
	return fmt.Sprintf("bitcode/driver: unsupported type %s", e.Type)
}

// Build walks rt once — rt must not itself be a pointer kind — and returns
// the encNode/decNode pair that drive its column codec tree. depthCap
// bounds every boxed self-referential pointer occurrence reachable from
// rt; 0 or negative selects columnar.DefaultRecursionDepthCap.
func Build(rt reflect.Type, depthCap int) (encNode, decNode, error) {
	if depthCap <= 0 {
		depthCap = columnar.DefaultRecursionDepthCap
	}

	enc, err := buildEncNode(rt, newBuildCtx(depthCap))
	if err != nil {
		return nil, nil, err
	}

	dec, err := buildDecNode(rt, newBuildCtx(depthCap))
	if err != nil {
		return nil, nil, err
	}

	return enc, dec, nil
}

func buildEncNode(rt reflect.Type, ctx *buildCtx) (encNode, error) {
	switch {
	case rt == charType:
		return newCharEncNode(), nil
	case isUnion2(rt):
		return buildUnion2EncNode(rt, ctx)
	case isUnion3(rt):
		return buildUnion3EncNode(rt, ctx)
	}

	switch rt.Kind() {
	case reflect.Bool:
		return &boolEncNode{}, nil
	case reflect.String:
		return newStringEncNode(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return newIntEncNode(naturalBitsForKind(rt.Kind())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return newUintEncNode(naturalBitsForKind(rt.Kind())), nil
	case reflect.Float32:
		return &float32EncNode{}, nil
	case reflect.Float64:
		return &float64EncNode{}, nil
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return newByteSliceEncNode(), nil
		}

		elem, err := buildEncNode(rt.Elem(), ctx)
		if err != nil {
			return nil, err
		}

		return newSequenceEncNode(elem), nil
	case reflect.Map:
		key, err := buildEncNode(rt.Key(), ctx)
		if err != nil {
			return nil, err
		}
		val, err := buildEncNode(rt.Elem(), ctx)
		if err != nil {
			return nil, err
		}

		return newMapEncNode(key, val), nil
	case reflect.Pointer:
		return buildPointerEncNode(rt, ctx)
	case reflect.Struct:
		return buildProductEncNode(rt, ctx)
	default:
		return nil, &unsupportedTypeError{Type: rt}
	}
}

func buildPointerEncNode(rt reflect.Type, ctx *buildCtx) (encNode, error) {
	elem := rt.Elem()
	if ph, ok := ctx.encInProgress[elem]; ok {
		return newSelfRefEncNode(ph, ctx.depthCap), nil
	}

	ph := &encPlaceholder{}
	ctx.encInProgress[elem] = ph
	inner, err := buildEncNode(elem, ctx)
	delete(ctx.encInProgress, elem)
	if err != nil {
		return nil, err
	}
	ph.resolved = inner

	return newOptionalEncNode(inner), nil
}

func buildProductEncNode(rt reflect.Type, ctx *buildCtx) (encNode, error) {
	var children []encNode
	var fieldIdx []int
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		child, err := buildEncNode(f.Type, ctx)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		fieldIdx = append(fieldIdx, i)
	}

	return newProductEncNode(children, fieldIdx), nil
}

func buildUnion2EncNode(rt reflect.Type, ctx *buildCtx) (encNode, error) {
	tagField, _ := rt.FieldByName("Tag")
	v0Field, _ := rt.FieldByName("V0")
	v1Field, _ := rt.FieldByName("V1")

	v0, err := buildEncNode(v0Field.Type, ctx)
	if err != nil {
		return nil, err
	}
	v1, err := buildEncNode(v1Field.Type, ctx)
	if err != nil {
		return nil, err
	}

	return newSumEncNode(
		columnar.NewDiscriminantColumn(2),
		[]encNode{v0, v1},
		[]int{v0Field.Index[0], v1Field.Index[0]},
		tagField.Index[0],
	), nil
}

func buildUnion3EncNode(rt reflect.Type, ctx *buildCtx) (encNode, error) {
	tagField, _ := rt.FieldByName("Tag")
	v0Field, _ := rt.FieldByName("V0")
	v1Field, _ := rt.FieldByName("V1")
	v2Field, _ := rt.FieldByName("V2")

	v0, err := buildEncNode(v0Field.Type, ctx)
	if err != nil {
		return nil, err
	}
	v1, err := buildEncNode(v1Field.Type, ctx)
	if err != nil {
		return nil, err
	}
	v2, err := buildEncNode(v2Field.Type, ctx)
	if err != nil {
		return nil, err
	}

	return newSumEncNode(
		columnar.NewDiscriminantColumn(3),
		[]encNode{v0, v1, v2},
		[]int{v0Field.Index[0], v1Field.Index[0], v2Field.Index[0]},
		tagField.Index[0],
	), nil
}

func buildDecNode(rt reflect.Type, ctx *buildCtx) (decNode, error) {
	switch {
	case rt == charType:
		return newCharDecNode(), nil
	case isUnion2(rt):
		return buildUnion2DecNode(rt, ctx)
	case isUnion3(rt):
		return buildUnion3DecNode(rt, ctx)
	}

	switch rt.Kind() {
	case reflect.Bool:
		return &boolDecNode{}, nil
	case reflect.String:
		return newStringDecNode(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return newIntDecNode(naturalBitsForKind(rt.Kind())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return newUintDecNode(naturalBitsForKind(rt.Kind())), nil
	case reflect.Float32:
		return &float32DecNode{}, nil
	case reflect.Float64:
		return &float64DecNode{}, nil
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return newByteSliceDecNode(), nil
		}

		elem, err := buildDecNode(rt.Elem(), ctx)
		if err != nil {
			return nil, err
		}

		return newSequenceDecNode(elem), nil
	case reflect.Map:
		key, err := buildDecNode(rt.Key(), ctx)
		if err != nil {
			return nil, err
		}
		val, err := buildDecNode(rt.Elem(), ctx)
		if err != nil {
			return nil, err
		}

		return newMapDecNode(key, val), nil
	case reflect.Pointer:
		return buildPointerDecNode(rt, ctx)
	case reflect.Struct:
		return buildProductDecNode(rt, ctx)
	default:
		return nil, &unsupportedTypeError{Type: rt}
	}
}

func buildPointerDecNode(rt reflect.Type, ctx *buildCtx) (decNode, error) {
	elem := rt.Elem()
	if ph, ok := ctx.decInProgress[elem]; ok {
		return newSelfRefDecNode(ph, ctx.depthCap), nil
	}

	ph := &decPlaceholder{}
	ctx.decInProgress[elem] = ph
	inner, err := buildDecNode(elem, ctx)
	delete(ctx.decInProgress, elem)
	if err != nil {
		return nil, err
	}
	ph.resolved = inner

	return newOptionalDecNode(inner), nil
}

func buildProductDecNode(rt reflect.Type, ctx *buildCtx) (decNode, error) {
	var children []decNode
	var fieldIdx []int
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		child, err := buildDecNode(f.Type, ctx)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		fieldIdx = append(fieldIdx, i)
	}

	return newProductDecNode(children, fieldIdx), nil
}

func buildUnion2DecNode(rt reflect.Type, ctx *buildCtx) (decNode, error) {
	tagField, _ := rt.FieldByName("Tag")
	v0Field, _ := rt.FieldByName("V0")
	v1Field, _ := rt.FieldByName("V1")

	v0, err := buildDecNode(v0Field.Type, ctx)
	if err != nil {
		return nil, err
	}
	v1, err := buildDecNode(v1Field.Type, ctx)
	if err != nil {
		return nil, err
	}

	return newSumDecNode(
		columnar.NewDiscriminantDecoder(2),
		[]decNode{v0, v1},
		[]int{v0Field.Index[0], v1Field.Index[0]},
		tagField.Index[0],
	), nil
}

func buildUnion3DecNode(rt reflect.Type, ctx *buildCtx) (decNode, error) {
	tagField, _ := rt.FieldByName("Tag")
	v0Field, _ := rt.FieldByName("V0")
	v1Field, _ := rt.FieldByName("V1")
	v2Field, _ := rt.FieldByName("V2")

	v0, err := buildDecNode(v0Field.Type, ctx)
	if err != nil {
		return nil, err
	}
	v1, err := buildDecNode(v1Field.Type, ctx)
	if err != nil {
		return nil, err
	}
	v2, err := buildDecNode(v2Field.Type, ctx)
	if err != nil {
		return nil, err
	}

	return newSumDecNode(
		columnar.NewDiscriminantDecoder(3),
		[]decNode{v0, v1, v2},
		[]int{v0Field.Index[0], v1Field.Index[0], v2Field.Index[0]},
		tagField.Index[0],
	), nil
}
