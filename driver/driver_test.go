package driver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitcode/internal/bitio"
)

// roundTrip builds the codec tree for T, encodes in, and decodes into a
// fresh T, returning it for the caller to assert against.
func roundTrip[T any](t *testing.T, in T) T {
	t.Helper()

	rt := reflect.TypeOf(in)
	enc, dec, err := Build(rt, 0)
	require.NoError(t, err)

	w := bitio.NewWriter()
	rv := reflect.ValueOf(&in).Elem()
	enc.Reserve(1)
	enc.Push(rv, 0)
	enc.FinishInto(w)

	r := bitio.NewReader(w.Finish())
	require.NoError(t, dec.Populate(r, 1))

	var out T
	ov := reflect.ValueOf(&out).Elem()
	require.NoError(t, dec.Assign(ov, 0))
	require.NoError(t, r.ExpectEOF())

	return out
}

type basicStruct struct {
	A int32
	B uint64
	C bool
	D string
	E float64
}

func TestProduct_RoundTrip(t *testing.T) {
	in := basicStruct{A: -7, B: 42, C: true, D: "hello", E: 3.5}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

type sliceStruct struct {
	Nums []int32
	Tags []string
}

func TestSequence_RoundTrip(t *testing.T) {
	in := sliceStruct{Nums: []int32{1, -2, 3, 4, 5}, Tags: []string{"a", "bb", "ccc"}}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

func TestSequence_Empty(t *testing.T) {
	in := sliceStruct{Nums: []int32{}, Tags: []string{}}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

type mapStruct struct {
	Counts map[string]int64
}

func TestMap_RoundTrip(t *testing.T) {
	in := mapStruct{Counts: map[string]int64{"x": 1, "y": -2, "z": 3}}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

type optionalStruct struct {
	Name  string
	Extra *int32
}

func TestOptional_RoundTrip(t *testing.T) {
	v := int32(99)
	in := optionalStruct{Name: "present", Extra: &v}
	out := roundTrip(t, in)
	require.Equal(t, in.Name, out.Name)
	require.NotNil(t, out.Extra)
	require.Equal(t, *in.Extra, *out.Extra)
}

func TestOptional_Nil(t *testing.T) {
	in := optionalStruct{Name: "absent", Extra: nil}
	out := roundTrip(t, in)
	require.Equal(t, in.Name, out.Name)
	require.Nil(t, out.Extra)
}

type inner struct {
	X, Y int32
}

type nestedStruct struct {
	Label string
	Point inner
}

func TestNestedProduct_RoundTrip(t *testing.T) {
	in := nestedStruct{Label: "p", Point: inner{X: 1, Y: -1}}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

type listNode struct {
	Value int32
	Next  *listNode
}

func TestSelfReferential_RoundTrip(t *testing.T) {
	in := listNode{Value: 1, Next: &listNode{Value: 2, Next: &listNode{Value: 3, Next: nil}}}
	out := roundTrip(t, in)
	require.Equal(t, in.Value, out.Value)
	require.NotNil(t, out.Next)
	require.Equal(t, in.Next.Value, out.Next.Value)
	require.NotNil(t, out.Next.Next)
	require.Equal(t, in.Next.Next.Value, out.Next.Next.Value)
	require.Nil(t, out.Next.Next.Next)
}

func TestSelfReferential_EmptyChain(t *testing.T) {
	in := listNode{Value: 1, Next: nil}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

func TestSelfReferential_DepthCapRejectsOnEncode(t *testing.T) {
	chain := &listNode{Value: 0}
	cur := chain
	for i := 1; i <= 5; i++ {
		cur.Next = &listNode{Value: int32(i)}
		cur = cur.Next
	}

	rt := reflect.TypeOf(listNode{})
	enc, _, err := Build(rt, 2)
	require.NoError(t, err)

	rv := reflect.ValueOf(chain).Elem()

	require.Panics(t, func() {
		enc.Reserve(1)
		enc.Push(rv, 0)
	})
}

type sumStruct struct {
	Label string
	Value Union2[int64, string]
}

func TestSum_Union2_RoundTrip(t *testing.T) {
	a := sumStruct{Label: "num", Value: NewUnion2A[int64, string](42)}
	outA := roundTrip(t, a)
	require.Equal(t, a, outA)

	b := sumStruct{Label: "str", Value: NewUnion2B[int64, string]("hi")}
	outB := roundTrip(t, b)
	require.Equal(t, b, outB)
}

type charStruct struct {
	Letter Char
}

func TestChar_RoundTrip(t *testing.T) {
	in := charStruct{Letter: Char('世')}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}

type byteStruct struct {
	Payload []byte
}

func TestByteSlice_RoundTrip(t *testing.T) {
	in := byteStruct{Payload: []byte{0x00, 0xFF, 0x10, 0x20}}
	out := roundTrip(t, in)
	require.Equal(t, in, out)
}
